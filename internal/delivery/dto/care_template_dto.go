package dto

type PatientDataRequest struct {
	Age                int      `json:"age" validate:"omitempty,gte=0,lte=120"`
	MenopauseStage     string   `json:"menopauseStage"`
	CystSize           float64  `json:"cystSize" validate:"omitempty,gte=0"`
	CystGrowth         float64  `json:"cystGrowth" validate:"omitempty,gte=0"`
	CA125Level         float64  `json:"ca125Level" validate:"omitempty,gte=0"`
	UltrasoundFeatures string   `json:"ultrasoundFeatures"`
	ReportedSymptoms   []string `json:"reportedSymptoms"`
}

type CreateCareTemplateRequest struct {
	PatientData      PatientDataRequest `json:"patientData"`
	SymptomID        string             `json:"symptomId"`
	RiskAssessmentID string             `json:"riskAssessmentId"`
}

type UpdateCarePlanRequest struct {
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"nextSteps"`
}

type UpdateCareTemplateRequest struct {
	Status   *string                `json:"status" validate:"omitempty,oneof=pending approved in_progress completed"`
	CarePlan *UpdateCarePlanRequest `json:"carePlan"`
}
