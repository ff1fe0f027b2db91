package entity

import (
	"time"

	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// SymptomFlags is the fixed questionnaire of tracked symptoms.
type SymptomFlags struct {
	Bloating         bool   `bson:"bloating" json:"bloating"`
	PelvicPain       bool   `bson:"pelvicPain" json:"pelvicPain"`
	IrregularPeriods bool   `bson:"irregularPeriods" json:"irregularPeriods"`
	HeavyBleeding    bool   `bson:"heavyBleeding" json:"heavyBleeding"`
	Fatigue          bool   `bson:"fatigue" json:"fatigue"`
	MoodSwings       bool   `bson:"moodSwings" json:"moodSwings"`
	BreastTenderness bool   `bson:"breastTenderness" json:"breastTenderness"`
	BackPain         bool   `bson:"backPain" json:"backPain"`
	Nausea           bool   `bson:"nausea" json:"nausea"`
	WeightGain       bool   `bson:"weightGain" json:"weightGain"`
	OtherSymptoms    string `bson:"otherSymptoms" json:"otherSymptoms"`
}

// Symptom is one logged symptom entry owned by a user.
type Symptom struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Symptoms  SymptomFlags       `bson:"symptoms" json:"symptoms"`
	Severity  Severity           `bson:"severity" json:"severity"`
	Duration  string             `bson:"duration" json:"duration"`
	Notes     string             `bson:"notes" json:"notes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SymptomStats summarizes a user's symptom history.
type SymptomStats struct {
	TotalEntries       int64            `json:"totalEntries"`
	AverageSeverity    float64          `json:"averageSeverity"`
	MostCommonSymptoms map[string]int64 `json:"mostCommonSymptoms"`
}

var SymptomSchema = apifeatures.NewSchema(
	"_id", "userId", "severity", "duration", "notes", "createdAt", "updatedAt",
)
