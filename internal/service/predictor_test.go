package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

func TestFlattenDefaults(t *testing.T) {
	got := flatten(entity.PatientData{})

	if got["Age"] != 30 {
		t.Errorf("got Age %v, want the 30 default", got["Age"])
	}
	if got["Menopause Stage"] != "Pre-menopausal" {
		t.Errorf("got stage %v", got["Menopause Stage"])
	}
	if got["Ultrasound Fe"] != "Normal" {
		t.Errorf("got ultrasound %v", got["Ultrasound Fe"])
	}
	if got["Reported Sym"] != "None" {
		t.Errorf("got symptoms %v", got["Reported Sym"])
	}
}

func TestFlattenPassesValuesThrough(t *testing.T) {
	got := flatten(entity.PatientData{
		Age:                45,
		MenopauseStage:     "Post-menopausal",
		CystSize:           7.2,
		CystGrowth:         0.4,
		FCA125Level:        60,
		UltrasoundFeatures: "Complex",
		ReportedSymptoms:   "Pelvic Pain, Bloating",
	})

	if got["Age"] != 45 || got["Menopause Stage"] != "Post-menopausal" {
		t.Errorf("demographics not carried over: %v", got)
	}
	if got["SI Cyst Size cm"] != 7.2 || got["Cyst Growth"] != 0.4 || got["fca 125 Level"] != float64(60) {
		t.Errorf("measurements not carried over: %v", got)
	}
	if got["Ultrasound Fe"] != "Complex" || got["Reported Sym"] != "Pelvic Pain, Bloating" {
		t.Errorf("observations not carried over: %v", got)
	}
}

func TestPredictCareTemplate(t *testing.T) {
	var path string
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := `{"success":true,"prediction":"Observation","confidence":0.85,` +
			`"probabilities":{"Observation":0.85,"Surgery":0.15}}`
		if _, err := w.Write([]byte(resp)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	predictor := NewPredictorClient(server.URL)
	prediction, err := predictor.PredictCareTemplate(context.Background(), entity.PatientData{Age: 30, CystSize: 4.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/care-template" {
		t.Errorf("got path %q", path)
	}
	if payload["SI Cyst Size cm"] != 4.1 {
		t.Errorf("flat payload not sent: %v", payload)
	}
	if prediction.Prediction != "Observation" || prediction.Confidence != 0.85 {
		t.Errorf("unexpected prediction: %+v", prediction)
	}
	if prediction.Probabilities["Surgery"] != 0.15 {
		t.Errorf("probabilities not parsed: %v", prediction.Probabilities)
	}
}

func TestPredictCareTemplateReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"success":false,"error":"model not loaded"}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	predictor := NewPredictorClient(server.URL)
	_, err := predictor.PredictCareTemplate(context.Background(), entity.PatientData{})
	if err == nil {
		t.Fatal("expected an error when the service reports failure")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error should carry the service message: %v", err)
	}
}

func TestPredictCareTemplateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	predictor := NewPredictorClient(server.URL)
	_, err := predictor.PredictCareTemplate(context.Background(), entity.PatientData{})
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestPredictRiskAssessment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/risk-assessment" {
			t.Errorf("got path %q", r.URL.Path)
		}
		if _, err := w.Write([]byte(`{"success":true,"risk_level":"medium","recommendation":"Follow up in 3 months","confidence":0.72}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	predictor := NewPredictorClient(server.URL)
	prediction, err := predictor.PredictRiskAssessment(context.Background(), entity.PatientData{Age: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.RiskLevel != "medium" || prediction.Confidence != 0.72 {
		t.Errorf("unexpected prediction: %+v", prediction)
	}
}
