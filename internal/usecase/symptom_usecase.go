package usecase

import (
	"context"
	"errors"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrSymptomNotFound = errors.New("symptom entry not found")
	ErrSymptomNotOwned = errors.New("symptom entry does not belong to you")
)

type SymptomUsecase interface {
	// Create logs the entry and then tries to generate a care template
	// from the reported symptoms. The second return value is nil when
	// generation fails; the entry itself is kept either way.
	Create(ctx context.Context, user *entity.User, req *dto.CreateSymptomRequest) (*entity.Symptom, *entity.CareTemplate, error)
	GetByID(ctx context.Context, userID, id string) (*entity.Symptom, error)
	GetLatest(ctx context.Context, userID string) (*entity.Symptom, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSymptomRequest) (*entity.Symptom, error)
	Delete(ctx context.Context, userID, id string) error
	BySeverity(ctx context.Context, userID string, severity entity.Severity) ([]entity.Symptom, error)
	Recent(ctx context.Context, userID string, days int) ([]entity.Symptom, error)
	Stats(ctx context.Context, userID string) (*entity.SymptomStats, error)
}

type symptomUsecase struct {
	log           *logrus.Logger
	repo          repository.SymptomRepository
	careTemplates CareTemplateUsecase
}

func NewSymptomUsecase(
	log *logrus.Logger,
	repo repository.SymptomRepository,
	careTemplates CareTemplateUsecase,
) SymptomUsecase {
	return &symptomUsecase{
		log:           log,
		repo:          repo,
		careTemplates: careTemplates,
	}
}

// activeSymptomNames lists the checked flags as display names, with any
// free-text symptoms appended last.
func activeSymptomNames(flags entity.SymptomFlags) []string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(flags.Bloating, "Bloating")
	add(flags.PelvicPain, "Pelvic Pain")
	add(flags.IrregularPeriods, "Irregular Periods")
	add(flags.HeavyBleeding, "Heavy Bleeding")
	add(flags.Fatigue, "Fatigue")
	add(flags.MoodSwings, "Mood Swings")
	add(flags.BreastTenderness, "Breast Tenderness")
	add(flags.BackPain, "Back Pain")
	add(flags.Nausea, "Nausea")
	add(flags.WeightGain, "Weight Gain")
	if flags.OtherSymptoms != "" {
		names = append(names, flags.OtherSymptoms)
	}
	return names
}

func flagsFromRequest(req dto.SymptomFlagsRequest) entity.SymptomFlags {
	return entity.SymptomFlags{
		Bloating:         req.Bloating,
		PelvicPain:       req.PelvicPain,
		IrregularPeriods: req.IrregularPeriods,
		HeavyBleeding:    req.HeavyBleeding,
		Fatigue:          req.Fatigue,
		MoodSwings:       req.MoodSwings,
		BreastTenderness: req.BreastTenderness,
		BackPain:         req.BackPain,
		Nausea:           req.Nausea,
		WeightGain:       req.WeightGain,
		OtherSymptoms:    req.OtherSymptoms,
	}
}

func (u *symptomUsecase) Create(ctx context.Context, user *entity.User, req *dto.CreateSymptomRequest) (*entity.Symptom, *entity.CareTemplate, error) {
	symptom := &entity.Symptom{
		UserID:   user.ID.Hex(),
		Symptoms: flagsFromRequest(req.Symptoms),
		Severity: entity.Severity(req.Severity),
		Duration: req.Duration,
		Notes:    req.Notes,
	}
	if err := u.repo.Create(ctx, symptom); err != nil {
		u.log.Warnf("Failed to save symptom entry for user %s: %+v", user.ID.Hex(), err)
		return nil, nil, err
	}

	data := entity.PatientData{
		Age:              user.Age,
		ReportedSymptoms: joinSymptoms(activeSymptomNames(symptom.Symptoms)),
	}
	template, err := u.careTemplates.CreateFromProfile(ctx, user.ID.Hex(), data, symptom.ID.Hex(), "")
	if err != nil {
		u.log.Warnf("Care template generation after symptom log failed for user %s: %+v", user.ID.Hex(), err)
		template = nil
	}

	return symptom, template, nil
}

func (u *symptomUsecase) GetByID(ctx context.Context, userID, id string) (*entity.Symptom, error) {
	symptom, err := u.repo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find symptom %s: %+v", id, err)
		return nil, err
	}
	if symptom == nil {
		return nil, ErrSymptomNotFound
	}
	if symptom.UserID != userID {
		return nil, ErrSymptomNotOwned
	}
	return symptom, nil
}

func (u *symptomUsecase) GetLatest(ctx context.Context, userID string) (*entity.Symptom, error) {
	symptom, err := u.repo.FindLatest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if symptom == nil {
		return nil, ErrSymptomNotFound
	}
	return symptom, nil
}

func (u *symptomUsecase) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.List(ctx, userID, params)
}

func (u *symptomUsecase) Update(ctx context.Context, userID, id string, req *dto.UpdateSymptomRequest) (*entity.Symptom, error) {
	if _, err := u.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	update := bson.M{}
	if req.Symptoms != nil {
		update["symptoms"] = flagsFromRequest(*req.Symptoms)
	}
	if req.Severity != nil {
		update["severity"] = entity.Severity(*req.Severity)
	}
	if req.Duration != nil {
		update["duration"] = *req.Duration
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}

	updated, err := u.repo.Update(ctx, id, update)
	if err != nil {
		u.log.Warnf("Failed to update symptom %s: %+v", id, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrSymptomNotFound
	}
	return updated, nil
}

func (u *symptomUsecase) Delete(ctx context.Context, userID, id string) error {
	if _, err := u.GetByID(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete symptom %s: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrSymptomNotFound
	}
	return nil
}

func (u *symptomUsecase) BySeverity(ctx context.Context, userID string, severity entity.Severity) ([]entity.Symptom, error) {
	return u.repo.FindBySeverity(ctx, userID, severity)
}

func (u *symptomUsecase) Recent(ctx context.Context, userID string, days int) ([]entity.Symptom, error) {
	if days <= 0 {
		days = 30
	}
	return u.repo.FindRecent(ctx, userID, days)
}

func (u *symptomUsecase) Stats(ctx context.Context, userID string) (*entity.SymptomStats, error) {
	return u.repo.Stats(ctx, userID)
}
