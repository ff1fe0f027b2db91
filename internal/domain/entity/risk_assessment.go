package entity

import (
	"time"

	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskAnswers is the fixed risk questionnaire.
type RiskAnswers struct {
	Bloating         bool   `bson:"bloating" json:"bloating"`
	PelvicPain       bool   `bson:"pelvicPain" json:"pelvicPain"`
	IrregularPeriods bool   `bson:"irregularPeriods" json:"irregularPeriods"`
	Mood             string `bson:"mood" json:"mood"`
	Exercise         string `bson:"exercise" json:"exercise"`
}

// RiskAssessment holds the questionnaire answers plus the derived score,
// level and recommendations.
type RiskAssessment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	Answers         RiskAnswers        `bson:"answers" json:"answers"`
	RiskLevel       RiskLevel          `bson:"riskLevel" json:"riskLevel"`
	Score           int                `bson:"score" json:"score"`
	Recommendations []string           `bson:"recommendations" json:"recommendations"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var RiskAssessmentSchema = apifeatures.NewSchema(
	"_id", "userId", "riskLevel", "score", "createdAt", "updatedAt",
)
