package entity

import (
	"time"

	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CareTemplateStatus string

const (
	CareTemplatePending    CareTemplateStatus = "pending"
	CareTemplateApproved   CareTemplateStatus = "approved"
	CareTemplateInProgress CareTemplateStatus = "in_progress"
	CareTemplateCompleted  CareTemplateStatus = "completed"
)

// PatientData is the structured snapshot sent to the prediction service.
type PatientData struct {
	Age                int     `bson:"age,omitempty" json:"age,omitempty"`
	MenopauseStage     string  `bson:"menopauseStage,omitempty" json:"menopauseStage,omitempty"`
	CystSize           float64 `bson:"cystSize,omitempty" json:"cystSize,omitempty"`
	CystGrowth         float64 `bson:"cystGrowth,omitempty" json:"cystGrowth,omitempty"`
	FCA125Level        float64 `bson:"fca125Level,omitempty" json:"fca125Level,omitempty"`
	UltrasoundFeatures string  `bson:"ultrasoundFeatures,omitempty" json:"ultrasoundFeatures,omitempty"`
	ReportedSymptoms   string  `bson:"reportedSymptoms,omitempty" json:"reportedSymptoms,omitempty"`
}

// CarePrediction is what came back from the predictor. Probabilities are
// trusted as-is; the local system does not normalize them.
type CarePrediction struct {
	TreatmentPlan string             `bson:"treatmentPlan" json:"treatmentPlan"`
	Confidence    float64            `bson:"confidence" json:"confidence"`
	Probabilities map[string]float64 `bson:"probabilities,omitempty" json:"probabilities,omitempty"`
}

// CarePlan combines the predictor's cost/inventory blobs, passed through
// verbatim, with locally generated recommendation and next-step lists.
type CarePlan struct {
	CostInfo        map[string]interface{} `bson:"costInfo,omitempty" json:"costInfo,omitempty"`
	InventoryInfo   map[string]interface{} `bson:"inventoryInfo,omitempty" json:"inventoryInfo,omitempty"`
	Recommendations []string               `bson:"recommendations" json:"recommendations"`
	NextSteps       []string               `bson:"nextSteps" json:"nextSteps"`
}

type CareTemplate struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"userId"`
	SymptomID        string             `bson:"symptomId,omitempty" json:"symptomId,omitempty"`
	RiskAssessmentID string             `bson:"riskAssessmentId,omitempty" json:"riskAssessmentId,omitempty"`
	PatientData      PatientData        `bson:"patientData" json:"patientData"`
	Prediction       CarePrediction     `bson:"prediction" json:"prediction"`
	CarePlan         CarePlan           `bson:"carePlan" json:"carePlan"`
	Status           CareTemplateStatus `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CareTemplateStats aggregates a user's care templates by status and
// treatment plan.
type CareTemplateStats struct {
	TotalTemplates            int64            `json:"totalTemplates"`
	PendingCount              int64            `json:"pendingCount"`
	ApprovedCount             int64            `json:"approvedCount"`
	InProgressCount           int64            `json:"inProgressCount"`
	CompletedCount            int64            `json:"completedCount"`
	TreatmentPlanDistribution map[string]int64 `json:"treatmentPlanDistribution"`
}

var CareTemplateSchema = apifeatures.NewSchema(
	"_id", "userId", "symptomId", "riskAssessmentId", "status",
	"createdAt", "updatedAt",
)
