package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/service"
)

func TestPlanForKnownTreatments(t *testing.T) {
	for _, plan := range []string{"Surgery", "Medication", "Observation", "Referral"} {
		entry := planFor(plan)
		if len(entry.recommendations) != 3 || len(entry.nextSteps) != 3 {
			t.Errorf("%s: got %d recommendations and %d next steps, want 3 each",
				plan, len(entry.recommendations), len(entry.nextSteps))
		}
	}
}

func TestPlanForUnknownTreatmentFallsBack(t *testing.T) {
	entry := planFor("Chemotherapy")
	if entry.recommendations[0] != defaultCarePlan.recommendations[0] {
		t.Errorf("unknown plan should use the generic care plan, got %v", entry.recommendations)
	}
}

func TestJoinSymptoms(t *testing.T) {
	if got := joinSymptoms([]string{"Bloating", "Fatigue"}); got != "Bloating, Fatigue" {
		t.Errorf("got %q", got)
	}
	if got := joinSymptoms(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCareTemplateCreateMapsPrediction(t *testing.T) {
	pred := &fakePredictor{care: &service.CarePrediction{
		Success:       true,
		Prediction:    "Surgery",
		Confidence:    0.92,
		Probabilities: map[string]float64{"Surgery": 0.92, "Observation": 0.08},
		CostInfo:      map[string]interface{}{"estimate": 1200},
	}}
	repo := newFakeCareTemplateRepo()
	uc := NewCareTemplateUsecase(testLogger(), repo, pred)

	req := &dto.CreateCareTemplateRequest{
		PatientData: dto.PatientDataRequest{
			Age:              42,
			MenopauseStage:   "Post-menopausal",
			CystSize:         6.5,
			CA125Level:       48,
			ReportedSymptoms: []string{"Pelvic Pain", "Bloating"},
		},
	}

	template, err := uc.Create(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if template.Status != entity.CareTemplatePending {
		t.Errorf("got status %s, want pending", template.Status)
	}
	if template.Prediction.TreatmentPlan != "Surgery" || template.Prediction.Confidence != 0.92 {
		t.Errorf("prediction not carried over: %+v", template.Prediction)
	}
	if template.CarePlan.CostInfo["estimate"] != 1200 {
		t.Errorf("cost info not carried over: %v", template.CarePlan.CostInfo)
	}
	if template.CarePlan.Recommendations[0] != carePlanTable["Surgery"].recommendations[0] {
		t.Errorf("care plan should follow the predicted treatment")
	}
	if pred.lastData.ReportedSymptoms != "Pelvic Pain, Bloating" {
		t.Errorf("got reported symptoms %q", pred.lastData.ReportedSymptoms)
	}
	if len(repo.created) != 1 {
		t.Error("template not persisted")
	}
}

func TestCareTemplateCreatePredictionFailure(t *testing.T) {
	pred := &fakePredictor{err: errors.New("connection refused")}
	repo := newFakeCareTemplateRepo()
	uc := NewCareTemplateUsecase(testLogger(), repo, pred)

	_, err := uc.Create(context.Background(), "u1", &dto.CreateCareTemplateRequest{})
	if !errors.Is(err, ErrPredictionFailed) {
		t.Errorf("got %v, want ErrPredictionFailed", err)
	}
	if len(repo.created) != 0 {
		t.Error("nothing should be persisted when prediction fails")
	}
}

func TestCareTemplateUpdateAndDeleteOwnership(t *testing.T) {
	pred := &fakePredictor{care: &service.CarePrediction{Success: true, Prediction: "Observation"}}
	repo := newFakeCareTemplateRepo()
	uc := NewCareTemplateUsecase(testLogger(), repo, pred)

	template, err := uc.Create(context.Background(), "owner", &dto.CreateCareTemplateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := template.ID.Hex()

	status := "approved"
	if _, err := uc.Update(context.Background(), "intruder", id, &dto.UpdateCareTemplateRequest{Status: &status}); !errors.Is(err, ErrCareTemplateNotOwned) {
		t.Errorf("update: got %v, want ErrCareTemplateNotOwned", err)
	}
	if err := uc.Delete(context.Background(), "intruder", id); !errors.Is(err, ErrCareTemplateNotOwned) {
		t.Errorf("delete: got %v, want ErrCareTemplateNotOwned", err)
	}

	updated, err := uc.Update(context.Background(), "owner", id, &dto.UpdateCareTemplateRequest{Status: &status})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Status != entity.CareTemplateApproved {
		t.Errorf("got status %s, want approved", updated.Status)
	}

	updated, err = uc.Update(context.Background(), "owner", id, &dto.UpdateCareTemplateRequest{
		CarePlan: &dto.UpdateCarePlanRequest{
			Recommendations: []string{"Follow up in two weeks"},
			NextSteps:       []string{"Book an ultrasound"},
		},
	})
	if err != nil {
		t.Fatalf("care plan update failed: %v", err)
	}
	if len(updated.CarePlan.Recommendations) != 1 || updated.CarePlan.Recommendations[0] != "Follow up in two weeks" {
		t.Errorf("got recommendations %v, want the replacement list", updated.CarePlan.Recommendations)
	}
	if len(updated.CarePlan.NextSteps) != 1 || updated.CarePlan.NextSteps[0] != "Book an ultrasound" {
		t.Errorf("got next steps %v, want the replacement list", updated.CarePlan.NextSteps)
	}

	if err := uc.Delete(context.Background(), "owner", id); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if _, err := uc.GetByID(context.Background(), "owner", id); !errors.Is(err, ErrCareTemplateNotFound) {
		t.Errorf("got %v, want ErrCareTemplateNotFound after delete", err)
	}
}
