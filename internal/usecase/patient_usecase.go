package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/internal/infrastructure/cache"
	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/pkg/jwt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientEmailTaken = errors.New("a patient with this email already exists")
)

type PatientUsecase interface {
	Signup(ctx context.Context, req *dto.SignupPatientRequest) (*entity.Patient, string, error)
	Signin(ctx context.Context, req *dto.SigninPatientRequest) (*entity.Patient, string, error)
	Logout(ctx context.Context, patientID, tokenID string) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	UpdateProfile(ctx context.Context, patientID string, req *dto.UpdatePatientProfileRequest) (*entity.Patient, error)
	List(ctx context.Context, page, limit int64) ([]entity.Patient, int64, error)
	Search(ctx context.Context, params map[string]string) ([]entity.Patient, error)
	// CreateWithAssessment registers a patient and immediately asks the
	// prediction service for a risk level. Prediction failures leave the
	// risk level "unknown"; the registration itself still succeeds.
	CreateWithAssessment(ctx context.Context, req *dto.CreatePatientWithAssessmentRequest) (*entity.Patient, *service.RiskPrediction, string, error)
}

type patientUsecase struct {
	log        *logrus.Logger
	repo       repository.PatientRepository
	jwtService *jwt.JWTService
	tokens     cache.TokenStore
	predictor  service.Predictor
}

func NewPatientUsecase(
	log *logrus.Logger,
	repo repository.PatientRepository,
	jwtService *jwt.JWTService,
	tokens cache.TokenStore,
	predictor service.Predictor,
) PatientUsecase {
	return &patientUsecase{
		log:        log,
		repo:       repo,
		jwtService: jwtService,
		tokens:     tokens,
		predictor:  predictor,
	}
}

func (u *patientUsecase) issueToken(ctx context.Context, id string) (string, error) {
	token, tokenID, err := u.jwtService.GenerateToken(id)
	if err != nil {
		return "", err
	}
	if err := u.tokens.Store(ctx, id, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		return "", err
	}
	return token, nil
}

func buildPatient(email, phone string, hashed []byte, age int, region, menopauseStage string, cystSize, ca125 float64, ultrasound string, symptoms []string) *entity.Patient {
	return &entity.Patient{
		Auth: entity.PatientAuth{
			Email:    strings.ToLower(email),
			Phone:    phone,
			Password: string(hashed),
			Status:   entity.PatientStatusActive,
		},
		MedicalData: entity.MedicalData{
			Age:                age,
			Region:             region,
			CystSize:           cystSize,
			CA125Level:         ca125,
			Symptoms:           joinSymptoms(symptoms),
			MenopauseStage:     menopauseStage,
			UltrasoundFeatures: ultrasound,
			RiskLevel:          entity.PatientRiskUnknown,
		},
	}
}

func (u *patientUsecase) Signup(ctx context.Context, req *dto.SignupPatientRequest) (*entity.Patient, string, error) {
	existing, err := u.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrPatientEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	patient := buildPatient(req.Email, req.Phone, hashed, req.Age,
		req.Region, req.MenopauseStage, req.CystSize, req.CA125Level, req.UltrasoundFeatures, req.Symptoms)
	if err := u.repo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient %s: %+v", req.Email, err)
		return nil, "", err
	}

	token, err := u.issueToken(ctx, patient.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return patient, token, nil
}

func (u *patientUsecase) Signin(ctx context.Context, req *dto.SigninPatientRequest) (*entity.Patient, string, error) {
	patient, err := u.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, "", err
	}
	if patient == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(patient.Auth.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.issueToken(ctx, patient.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return patient, token, nil
}

func (u *patientUsecase) Logout(ctx context.Context, patientID, tokenID string) error {
	return u.tokens.Revoke(ctx, patientID, tokenID)
}

func (u *patientUsecase) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	patient, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) UpdateProfile(ctx context.Context, patientID string, req *dto.UpdatePatientProfileRequest) (*entity.Patient, error) {
	update := bson.M{}
	if req.Phone != nil {
		update["auth.phone"] = *req.Phone
	}
	if req.Age != nil {
		update["medicalData.age"] = *req.Age
	}
	if req.Region != nil {
		update["medicalData.region"] = *req.Region
	}
	if req.MenopauseStage != nil {
		update["medicalData.menopauseStage"] = *req.MenopauseStage
	}
	if req.CystSize != nil {
		update["medicalData.cystSize"] = *req.CystSize
	}
	if req.CA125Level != nil {
		update["medicalData.ca125Level"] = *req.CA125Level
	}
	if req.UltrasoundFeatures != nil {
		update["medicalData.ultrasoundFeatures"] = *req.UltrasoundFeatures
	}
	if req.Symptoms != nil {
		update["medicalData.symptoms"] = joinSymptoms(req.Symptoms)
	}

	patient, err := u.repo.Update(ctx, patientID, update)
	if err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) List(ctx context.Context, page, limit int64) ([]entity.Patient, int64, error) {
	return u.repo.List(ctx, page, limit)
}

// Search narrows the patient collection on a fixed set of clinical
// attributes. Unknown parameters are ignored rather than rejected.
func (u *patientUsecase) Search(ctx context.Context, params map[string]string) ([]entity.Patient, error) {
	filter := bson.M{}
	if v := params["email"]; v != "" {
		filter["auth.email"] = strings.ToLower(v)
	}
	if v := params["region"]; v != "" {
		filter["medicalData.region"] = primitive.Regex{Pattern: v, Options: "i"}
	}
	if v := params["riskLevel"]; v != "" {
		filter["medicalData.riskLevel"] = entity.PatientRiskLevel(strings.ToLower(v))
	}
	if v := params["menopauseStage"]; v != "" {
		filter["medicalData.menopauseStage"] = v
	}
	return u.repo.Search(ctx, filter)
}

func (u *patientUsecase) CreateWithAssessment(ctx context.Context, req *dto.CreatePatientWithAssessmentRequest) (*entity.Patient, *service.RiskPrediction, string, error) {
	signup := dto.SignupPatientRequest{
		Email:              req.Email,
		Phone:              req.Phone,
		Password:           req.Password,
		Name:               req.Name,
		Age:                req.Age,
		Region:             req.Region,
		MenopauseStage:     req.MenopauseStage,
		CystSize:           req.CystSize,
		CystGrowth:         req.CystGrowth,
		CA125Level:         req.CA125Level,
		UltrasoundFeatures: req.UltrasoundFeatures,
		Symptoms:           req.Symptoms,
	}
	patient, token, err := u.Signup(ctx, &signup)
	if err != nil {
		return nil, nil, "", err
	}

	data := entity.PatientData{
		Age:                req.Age,
		MenopauseStage:     req.MenopauseStage,
		CystSize:           req.CystSize,
		FCA125Level:        req.CA125Level,
		UltrasoundFeatures: req.UltrasoundFeatures,
		ReportedSymptoms:   joinSymptoms(req.Symptoms),
	}
	prediction, err := u.predictor.PredictRiskAssessment(ctx, data)
	if err != nil || !prediction.Success {
		u.log.Warnf("Risk prediction during patient registration failed: %+v", err)
		return patient, nil, token, nil
	}

	level := entity.PatientRiskLevel(strings.ToLower(prediction.RiskLevel))
	switch level {
	case entity.PatientRiskLow, entity.PatientRiskMedium, entity.PatientRiskHigh:
	default:
		level = entity.PatientRiskUnknown
	}
	updated, err := u.repo.Update(ctx, patient.ID.Hex(), bson.M{
		"medicalData.riskLevel":              level,
		"medicalData.previousRecommendation": prediction.Recommendation,
	})
	if err != nil {
		u.log.Warnf("Failed to store predicted risk for patient %s: %+v", patient.ID.Hex(), err)
		return patient, prediction, token, nil
	}
	return updated, prediction, token, nil
}
