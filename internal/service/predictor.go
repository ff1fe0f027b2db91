package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

const predictorTimeout = 30 * time.Second

// CarePrediction is the predictor's response for /care-template.
type CarePrediction struct {
	Success       bool                   `json:"success"`
	Prediction    string                 `json:"prediction"`
	Confidence    float64                `json:"confidence"`
	Probabilities map[string]float64     `json:"probabilities"`
	CostInfo      map[string]interface{} `json:"costInfo"`
	InventoryInfo map[string]interface{} `json:"inventoryInfo"`
	Error         string                 `json:"error"`
}

// RiskPrediction is the predictor's response for /risk-assessment.
type RiskPrediction struct {
	Success        bool    `json:"success"`
	RiskLevel      string  `json:"risk_level"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
}

// Predictor calls the external ovarian cyst prediction service.
type Predictor interface {
	PredictCareTemplate(ctx context.Context, data entity.PatientData) (*CarePrediction, error)
	PredictRiskAssessment(ctx context.Context, data entity.PatientData) (*RiskPrediction, error)
}

type predictorClient struct {
	baseURL string
	client  *http.Client
}

func NewPredictorClient(baseURL string) Predictor {
	return &predictorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: predictorTimeout},
	}
}

// flatten maps the internal patient-data shape onto the predictor's flat
// attribute names, filling the documented defaults for missing values.
func flatten(data entity.PatientData) map[string]interface{} {
	age := data.Age
	if age == 0 {
		age = 30
	}
	stage := data.MenopauseStage
	if stage == "" {
		stage = "Pre-menopausal"
	}
	ultrasound := data.UltrasoundFeatures
	if ultrasound == "" {
		ultrasound = "Normal"
	}
	symptoms := data.ReportedSymptoms
	if symptoms == "" {
		symptoms = "None"
	}

	return map[string]interface{}{
		"Age":             age,
		"Menopause Stage": stage,
		"SI Cyst Size cm": data.CystSize,
		"Cyst Growth":     data.CystGrowth,
		"fca 125 Level":   data.FCA125Level,
		"Ultrasound Fe":   ultrasound,
		"Reported Sym":    symptoms,
	}
}

func (c *predictorClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("prediction service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, respBody)
	}

	return json.Unmarshal(respBody, out)
}

func (c *predictorClient) PredictCareTemplate(ctx context.Context, data entity.PatientData) (*CarePrediction, error) {
	var prediction CarePrediction
	if err := c.post(ctx, "/care-template", flatten(data), &prediction); err != nil {
		return nil, err
	}
	if !prediction.Success {
		msg := prediction.Error
		if msg == "" {
			msg = "prediction failed"
		}
		return nil, fmt.Errorf("prediction service error: %s", msg)
	}
	return &prediction, nil
}

func (c *predictorClient) PredictRiskAssessment(ctx context.Context, data entity.PatientData) (*RiskPrediction, error) {
	var prediction RiskPrediction
	if err := c.post(ctx, "/risk-assessment", flatten(data), &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}
