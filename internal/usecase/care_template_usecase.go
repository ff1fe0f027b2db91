package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrCareTemplateNotFound = errors.New("care template not found")
	ErrCareTemplateNotOwned = errors.New("care template does not belong to you")
	ErrPredictionFailed     = errors.New("failed to generate care template prediction")
)

type CareTemplateUsecase interface {
	Create(ctx context.Context, userID string, req *dto.CreateCareTemplateRequest) (*entity.CareTemplate, error)
	// CreateFromProfile is the internal entry point used after symptom
	// logging and risk assessments; failures there are tolerated.
	CreateFromProfile(ctx context.Context, userID string, data entity.PatientData, symptomID, riskAssessmentID string) (*entity.CareTemplate, error)
	GetByID(ctx context.Context, userID, id string) (*entity.CareTemplate, error)
	GetLatest(ctx context.Context, userID string) (*entity.CareTemplate, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateCareTemplateRequest) (*entity.CareTemplate, error)
	Delete(ctx context.Context, userID, id string) error
	ByStatus(ctx context.Context, userID string, status entity.CareTemplateStatus) ([]entity.CareTemplate, error)
	Stats(ctx context.Context, userID string) (*entity.CareTemplateStats, error)
}

type careTemplateUsecase struct {
	log       *logrus.Logger
	repo      repository.CareTemplateRepository
	predictor service.Predictor
}

func NewCareTemplateUsecase(
	log *logrus.Logger,
	repo repository.CareTemplateRepository,
	predictor service.Predictor,
) CareTemplateUsecase {
	return &careTemplateUsecase{
		log:       log,
		repo:      repo,
		predictor: predictor,
	}
}

// carePlanEntry pairs the advice lists attached to a treatment plan.
type carePlanEntry struct {
	recommendations []string
	nextSteps       []string
}

var carePlanTable = map[string]carePlanEntry{
	"Surgery": {
		recommendations: []string{
			"Schedule surgical consultation as soon as possible",
			"Complete pre-operative assessments and blood work",
			"Discuss surgical options and risks with a specialist",
		},
		nextSteps: []string{
			"Book an appointment with a gynecologist",
			"Complete required imaging and lab tests",
			"Review and sign surgical consent forms",
		},
	},
	"Medication": {
		recommendations: []string{
			"Start the prescribed medication regimen",
			"Monitor for side effects and report them promptly",
			"Schedule a follow-up review in 4-6 weeks",
		},
		nextSteps: []string{
			"Fill the prescription at your pharmacy",
			"Set daily medication reminders",
			"Book a follow-up appointment",
		},
	},
	"Observation": {
		recommendations: []string{
			"Continue regular monitoring of the cyst",
			"Track symptoms daily in the app",
			"Schedule a follow-up ultrasound in 3 months",
		},
		nextSteps: []string{
			"Log any new or worsening symptoms",
			"Book the follow-up ultrasound",
			"Maintain a healthy lifestyle and diet",
		},
	},
	"Referral": {
		recommendations: []string{
			"Referral to a specialist is recommended",
			"Gather your medical records and imaging",
			"Prepare questions for the specialist visit",
		},
		nextSteps: []string{
			"Contact the referred specialist clinic",
			"Arrange transfer of medical records",
			"Attend the referral appointment",
		},
	},
}

var defaultCarePlan = carePlanEntry{
	recommendations: []string{
		"Consult with your healthcare provider",
		"Continue monitoring your symptoms",
		"Maintain regular check-ups",
	},
	nextSteps: []string{
		"Schedule an appointment with your doctor",
		"Keep a daily symptom diary",
		"Follow up as advised",
	},
}

// joinSymptoms renders a symptom list the way the predictor expects,
// comma separated in reported order.
func joinSymptoms(symptoms []string) string {
	return strings.Join(symptoms, ", ")
}

func planFor(treatmentPlan string) carePlanEntry {
	if entry, ok := carePlanTable[treatmentPlan]; ok {
		return entry
	}
	return defaultCarePlan
}

func (u *careTemplateUsecase) Create(ctx context.Context, userID string, req *dto.CreateCareTemplateRequest) (*entity.CareTemplate, error) {
	data := entity.PatientData{
		Age:                req.PatientData.Age,
		MenopauseStage:     req.PatientData.MenopauseStage,
		CystSize:           req.PatientData.CystSize,
		CystGrowth:         req.PatientData.CystGrowth,
		FCA125Level:        req.PatientData.CA125Level,
		UltrasoundFeatures: req.PatientData.UltrasoundFeatures,
		ReportedSymptoms:   joinSymptoms(req.PatientData.ReportedSymptoms),
	}
	return u.CreateFromProfile(ctx, userID, data, req.SymptomID, req.RiskAssessmentID)
}

func (u *careTemplateUsecase) CreateFromProfile(ctx context.Context, userID string, data entity.PatientData, symptomID, riskAssessmentID string) (*entity.CareTemplate, error) {
	prediction, err := u.predictor.PredictCareTemplate(ctx, data)
	if err != nil {
		u.log.Warnf("Care template prediction failed for user %s: %+v", userID, err)
		return nil, ErrPredictionFailed
	}

	entry := planFor(prediction.Prediction)
	template := &entity.CareTemplate{
		UserID:           userID,
		SymptomID:        symptomID,
		RiskAssessmentID: riskAssessmentID,
		PatientData:      data,
		Prediction: entity.CarePrediction{
			TreatmentPlan: prediction.Prediction,
			Confidence:    prediction.Confidence,
			Probabilities: prediction.Probabilities,
		},
		CarePlan: entity.CarePlan{
			CostInfo:        prediction.CostInfo,
			InventoryInfo:   prediction.InventoryInfo,
			Recommendations: entry.recommendations,
			NextSteps:       entry.nextSteps,
		},
		Status: entity.CareTemplatePending,
	}

	if err := u.repo.Create(ctx, template); err != nil {
		u.log.Warnf("Failed to save care template for user %s: %+v", userID, err)
		return nil, err
	}
	return template, nil
}

func (u *careTemplateUsecase) GetByID(ctx context.Context, userID, id string) (*entity.CareTemplate, error) {
	template, err := u.repo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find care template %s: %+v", id, err)
		return nil, err
	}
	if template == nil {
		return nil, ErrCareTemplateNotFound
	}
	if template.UserID != userID {
		return nil, ErrCareTemplateNotOwned
	}
	return template, nil
}

func (u *careTemplateUsecase) GetLatest(ctx context.Context, userID string) (*entity.CareTemplate, error) {
	template, err := u.repo.FindLatest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrCareTemplateNotFound
	}
	return template, nil
}

func (u *careTemplateUsecase) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.List(ctx, userID, params)
}

func (u *careTemplateUsecase) Update(ctx context.Context, userID, id string, req *dto.UpdateCareTemplateRequest) (*entity.CareTemplate, error) {
	if _, err := u.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	update := bson.M{}
	if req.Status != nil {
		update["status"] = entity.CareTemplateStatus(*req.Status)
	}
	if req.CarePlan != nil {
		if req.CarePlan.Recommendations != nil {
			update["carePlan.recommendations"] = req.CarePlan.Recommendations
		}
		if req.CarePlan.NextSteps != nil {
			update["carePlan.nextSteps"] = req.CarePlan.NextSteps
		}
	}

	updated, err := u.repo.Update(ctx, id, update)
	if err != nil {
		u.log.Warnf("Failed to update care template %s: %+v", id, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrCareTemplateNotFound
	}
	return updated, nil
}

func (u *careTemplateUsecase) Delete(ctx context.Context, userID, id string) error {
	if _, err := u.GetByID(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete care template %s: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrCareTemplateNotFound
	}
	return nil
}

func (u *careTemplateUsecase) ByStatus(ctx context.Context, userID string, status entity.CareTemplateStatus) ([]entity.CareTemplate, error) {
	return u.repo.FindByStatus(ctx, userID, status)
}

func (u *careTemplateUsecase) Stats(ctx context.Context, userID string) (*entity.CareTemplateStats, error) {
	return u.repo.Stats(ctx, userID)
}
