package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScoreAnswersWeights(t *testing.T) {
	cases := []struct {
		name    string
		answers entity.RiskAnswers
		want    int
	}{
		{"nothing checked", entity.RiskAnswers{Mood: "happy", Exercise: "moderate"}, 0},
		{"bloating only", entity.RiskAnswers{Bloating: true, Mood: "happy", Exercise: "moderate"}, 2},
		{"pelvic pain only", entity.RiskAnswers{PelvicPain: true, Mood: "happy", Exercise: "intense"}, 3},
		{"irregular periods only", entity.RiskAnswers{IrregularPeriods: true, Mood: "neutral", Exercise: "moderate"}, 2},
		{"stressed", entity.RiskAnswers{Mood: "stressed", Exercise: "moderate"}, 1},
		{"anxious", entity.RiskAnswers{Mood: "anxious", Exercise: "moderate"}, 2},
		{"depressed", entity.RiskAnswers{Mood: "depressed", Exercise: "moderate"}, 3},
		{"no exercise", entity.RiskAnswers{Mood: "happy", Exercise: "none"}, 2},
		{"light exercise", entity.RiskAnswers{Mood: "happy", Exercise: "light"}, 1},
		{
			"everything",
			entity.RiskAnswers{Bloating: true, PelvicPain: true, IrregularPeriods: true, Mood: "depressed", Exercise: "none"},
			12,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := scoreAnswers(c.answers); got != c.want {
				t.Errorf("got score %d, want %d", got, c.want)
			}
		})
	}
}

func TestLevelForBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  entity.RiskLevel
	}{
		{0, entity.RiskLow},
		{3, entity.RiskLow},
		{4, entity.RiskModerate},
		{7, entity.RiskModerate},
		{8, entity.RiskHigh},
		{12, entity.RiskHigh},
	}
	for _, c := range cases {
		if got := levelFor(c.score); got != c.want {
			t.Errorf("score %d: got %s, want %s", c.score, got, c.want)
		}
	}
}

func TestRecommendationsForModerateExercise(t *testing.T) {
	sedentary := entity.RiskAnswers{Exercise: "none"}
	active := entity.RiskAnswers{Exercise: "moderate"}

	if got := recommendationsFor(entity.RiskModerate, sedentary); len(got) != 4 {
		t.Errorf("sedentary moderate risk: got %d recommendations, want 4", len(got))
	}
	if got := recommendationsFor(entity.RiskModerate, active); len(got) != 3 {
		t.Errorf("active moderate risk: got %d recommendations, want 3", len(got))
	}
	if got := recommendationsFor(entity.RiskLow, sedentary); len(got) != 3 {
		t.Errorf("low risk: got %d recommendations, want 3", len(got))
	}
	if got := recommendationsFor(entity.RiskHigh, sedentary); len(got) != 3 {
		t.Errorf("high risk: got %d recommendations, want 3", len(got))
	}
}

func newRiskFixture(pred *fakePredictor) (RiskAssessmentUsecase, *fakeRiskAssessmentRepo, *fakeCareTemplateRepo) {
	riskRepo := &fakeRiskAssessmentRepo{}
	templateRepo := newFakeCareTemplateRepo()
	careTemplates := NewCareTemplateUsecase(testLogger(), templateRepo, pred)
	return NewRiskAssessmentUsecase(testLogger(), riskRepo, careTemplates), riskRepo, templateRepo
}

func TestRiskAssessmentCreateGeneratesCareTemplate(t *testing.T) {
	pred := &fakePredictor{care: &service.CarePrediction{Success: true, Prediction: "Observation", Confidence: 0.8}}
	uc, riskRepo, templateRepo := newRiskFixture(pred)

	user := &entity.User{ID: primitive.NewObjectID(), Age: 27}
	req := &dto.CreateRiskAssessmentRequest{
		Answers: dto.RiskAnswersRequest{Bloating: true, PelvicPain: true, Mood: "anxious", Exercise: "light"},
	}

	assessment, template, err := uc.Create(context.Background(), user, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.Score != 8 || assessment.RiskLevel != entity.RiskHigh {
		t.Errorf("got score %d level %s, want 8 High", assessment.Score, assessment.RiskLevel)
	}
	if len(riskRepo.created) != 1 {
		t.Fatalf("assessment not persisted")
	}
	if template == nil {
		t.Fatal("expected a care template")
	}
	if template.RiskAssessmentID != assessment.ID.Hex() {
		t.Errorf("template not linked to the assessment")
	}
	if len(templateRepo.created) != 1 {
		t.Errorf("template not persisted")
	}
	if pred.lastData.Age != 27 {
		t.Errorf("got predictor age %d, want 27", pred.lastData.Age)
	}
	if pred.lastData.ReportedSymptoms != "Bloating, Pelvic Pain" {
		t.Errorf("got reported symptoms %q", pred.lastData.ReportedSymptoms)
	}
}

func TestRiskAssessmentCreateSurvivesPredictionFailure(t *testing.T) {
	pred := &fakePredictor{err: errors.New("service down")}
	uc, riskRepo, _ := newRiskFixture(pred)

	user := &entity.User{ID: primitive.NewObjectID()}
	req := &dto.CreateRiskAssessmentRequest{
		Answers: dto.RiskAnswersRequest{Mood: "happy", Exercise: "moderate"},
	}

	assessment, template, err := uc.Create(context.Background(), user, req)
	if err != nil {
		t.Fatalf("assessment must not fail with the predictor: %v", err)
	}
	if assessment == nil || len(riskRepo.created) != 1 {
		t.Fatal("assessment should still be persisted")
	}
	if template != nil {
		t.Error("expected no care template on prediction failure")
	}
}

func TestRiskAssessmentGetByIDOwnership(t *testing.T) {
	pred := &fakePredictor{care: &service.CarePrediction{Success: true, Prediction: "Observation"}}
	uc, riskRepo, _ := newRiskFixture(pred)

	owner := &entity.User{ID: primitive.NewObjectID()}
	req := &dto.CreateRiskAssessmentRequest{Answers: dto.RiskAnswersRequest{Mood: "neutral", Exercise: "intense"}}
	assessment, _, err := uc.Create(context.Background(), owner, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.GetByID(context.Background(), owner.ID.Hex(), assessment.ID.Hex()); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := uc.GetByID(context.Background(), "someone-else", assessment.ID.Hex()); !errors.Is(err, ErrRiskAssessmentNotOwned) {
		t.Errorf("got %v, want ErrRiskAssessmentNotOwned", err)
	}
	if _, err := uc.GetByID(context.Background(), owner.ID.Hex(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrRiskAssessmentNotFound) {
		t.Errorf("got %v, want ErrRiskAssessmentNotFound", err)
	}
	if len(riskRepo.created) != 1 {
		t.Errorf("lookups must not create assessments")
	}
}

func TestRiskAssessmentGetLatestEmpty(t *testing.T) {
	uc, _, _ := newRiskFixture(&fakePredictor{})
	if _, err := uc.GetLatest(context.Background(), "nobody"); !errors.Is(err, ErrRiskAssessmentNotFound) {
		t.Errorf("got %v, want ErrRiskAssessmentNotFound", err)
	}
}
