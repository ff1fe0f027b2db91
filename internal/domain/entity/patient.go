package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
	PatientStatusPending  PatientStatus = "pending"
)

// PatientRiskLevel uses lowercase values, unlike the user-facing
// Low/Moderate/High scale, because it mirrors the prediction service.
type PatientRiskLevel string

const (
	PatientRiskLow     PatientRiskLevel = "low"
	PatientRiskMedium  PatientRiskLevel = "medium"
	PatientRiskHigh    PatientRiskLevel = "high"
	PatientRiskUnknown PatientRiskLevel = "unknown"
)

type PatientAuth struct {
	Email    string        `bson:"email" json:"email"`
	Phone    string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Password string        `bson:"password" json:"-"`
	Status   PatientStatus `bson:"status" json:"status"`
}

type MedicalData struct {
	Age                    int                    `bson:"age,omitempty" json:"age,omitempty"`
	Region                 string                 `bson:"region,omitempty" json:"region,omitempty"`
	CystSize               float64                `bson:"cystSize,omitempty" json:"cystSize,omitempty"`
	CA125Level             float64                `bson:"ca125Level,omitempty" json:"ca125Level,omitempty"`
	Symptoms               string                 `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	MenopauseStage         string                 `bson:"menopauseStage,omitempty" json:"menopauseStage,omitempty"`
	UltrasoundFeatures     string                 `bson:"ultrasoundFeatures,omitempty" json:"ultrasoundFeatures,omitempty"`
	RiskLevel              PatientRiskLevel       `bson:"riskLevel" json:"riskLevel"`
	PreviousRecommendation string                 `bson:"previousRecommendation,omitempty" json:"previousRecommendation,omitempty"`
	CareTemplate           map[string]interface{} `bson:"careTemplate,omitempty" json:"careTemplate,omitempty"`
}

// Patient is a self-registered patient account with its clinical snapshot.
type Patient struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Auth        PatientAuth        `bson:"auth" json:"auth"`
	MedicalData MedicalData        `bson:"medicalData" json:"medicalData"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
