package usecase

import (
	"context"
	"errors"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"github.com/sirupsen/logrus"
)

var (
	ErrRiskAssessmentNotFound = errors.New("risk assessment not found")
	ErrRiskAssessmentNotOwned = errors.New("risk assessment does not belong to you")
)

type RiskAssessmentUsecase interface {
	// Create scores the questionnaire, persists the assessment and then
	// tries to generate a care template from the answers. The second
	// return value is nil when that generation fails; the assessment
	// itself is never rolled back for it.
	Create(ctx context.Context, user *entity.User, req *dto.CreateRiskAssessmentRequest) (*entity.RiskAssessment, *entity.CareTemplate, error)
	GetByID(ctx context.Context, userID, id string) (*entity.RiskAssessment, error)
	GetLatest(ctx context.Context, userID string) (*entity.RiskAssessment, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
}

type riskAssessmentUsecase struct {
	log           *logrus.Logger
	repo          repository.RiskAssessmentRepository
	careTemplates CareTemplateUsecase
}

func NewRiskAssessmentUsecase(
	log *logrus.Logger,
	repo repository.RiskAssessmentRepository,
	careTemplates CareTemplateUsecase,
) RiskAssessmentUsecase {
	return &riskAssessmentUsecase{
		log:           log,
		repo:          repo,
		careTemplates: careTemplates,
	}
}

// scoreAnswers applies the fixed questionnaire weights.
func scoreAnswers(answers entity.RiskAnswers) int {
	score := 0
	if answers.Bloating {
		score += 2
	}
	if answers.PelvicPain {
		score += 3
	}
	if answers.IrregularPeriods {
		score += 2
	}

	switch answers.Mood {
	case "stressed":
		score++
	case "anxious":
		score += 2
	case "depressed":
		score += 3
	}

	switch answers.Exercise {
	case "none":
		score += 2
	case "light":
		score++
	}

	return score
}

func levelFor(score int) entity.RiskLevel {
	switch {
	case score <= 3:
		return entity.RiskLow
	case score <= 7:
		return entity.RiskModerate
	default:
		return entity.RiskHigh
	}
}

func recommendationsFor(level entity.RiskLevel, answers entity.RiskAnswers) []string {
	switch level {
	case entity.RiskLow:
		return []string{
			"Your answers suggest a low risk. Keep up your healthy habits.",
			"Track your cycle and symptoms regularly in the app.",
			"Schedule routine annual check-ups with your healthcare provider.",
		}
	case entity.RiskModerate:
		recs := []string{
			"Your answers suggest a moderate risk. Consider discussing them with a healthcare provider.",
			"Keep a detailed symptom diary over the next few weeks.",
			"Practice stress management techniques such as deep breathing or meditation.",
		}
		if answers.Exercise == "none" || answers.Exercise == "light" {
			recs = append(recs, "Increasing your physical activity may help regulate your cycle and reduce symptoms.")
		}
		return recs
	default:
		return []string{
			"Your answers suggest an elevated risk. Please consult a healthcare provider soon.",
			"Consider booking a pelvic ultrasound to check for ovarian cysts.",
			"Seek immediate medical care if you experience severe or sudden pelvic pain.",
		}
	}
}

// symptomNamesFromAnswers converts the boolean answers into the
// human-readable symptom names the predictor was trained on.
func symptomNamesFromAnswers(answers entity.RiskAnswers) []string {
	var names []string
	if answers.Bloating {
		names = append(names, "Bloating")
	}
	if answers.PelvicPain {
		names = append(names, "Pelvic Pain")
	}
	if answers.IrregularPeriods {
		names = append(names, "Irregular Periods")
	}
	return names
}

func (u *riskAssessmentUsecase) Create(ctx context.Context, user *entity.User, req *dto.CreateRiskAssessmentRequest) (*entity.RiskAssessment, *entity.CareTemplate, error) {
	answers := entity.RiskAnswers{
		Bloating:         req.Answers.Bloating,
		PelvicPain:       req.Answers.PelvicPain,
		IrregularPeriods: req.Answers.IrregularPeriods,
		Mood:             req.Answers.Mood,
		Exercise:         req.Answers.Exercise,
	}

	score := scoreAnswers(answers)
	level := levelFor(score)

	assessment := &entity.RiskAssessment{
		UserID:          user.ID.Hex(),
		Answers:         answers,
		Score:           score,
		RiskLevel:       level,
		Recommendations: recommendationsFor(level, answers),
	}
	if err := u.repo.Create(ctx, assessment); err != nil {
		u.log.Warnf("Failed to save risk assessment for user %s: %+v", user.ID.Hex(), err)
		return nil, nil, err
	}

	data := entity.PatientData{
		Age:              user.Age,
		ReportedSymptoms: joinSymptoms(symptomNamesFromAnswers(answers)),
	}
	template, err := u.careTemplates.CreateFromProfile(ctx, user.ID.Hex(), data, "", assessment.ID.Hex())
	if err != nil {
		u.log.Warnf("Care template generation after risk assessment failed for user %s: %+v", user.ID.Hex(), err)
		template = nil
	}

	return assessment, template, nil
}

func (u *riskAssessmentUsecase) GetByID(ctx context.Context, userID, id string) (*entity.RiskAssessment, error) {
	assessment, err := u.repo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find risk assessment %s: %+v", id, err)
		return nil, err
	}
	if assessment == nil {
		return nil, ErrRiskAssessmentNotFound
	}
	if assessment.UserID != userID {
		return nil, ErrRiskAssessmentNotOwned
	}
	return assessment, nil
}

func (u *riskAssessmentUsecase) GetLatest(ctx context.Context, userID string) (*entity.RiskAssessment, error) {
	assessment, err := u.repo.FindLatest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrRiskAssessmentNotFound
	}
	return assessment, nil
}

func (u *riskAssessmentUsecase) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.List(ctx, userID, params)
}
