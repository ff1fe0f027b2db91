package dto

type RiskAnswersRequest struct {
	Bloating         bool   `json:"bloating"`
	PelvicPain       bool   `json:"pelvicPain"`
	IrregularPeriods bool   `json:"irregularPeriods"`
	Mood             string `json:"mood" validate:"required,oneof=happy neutral stressed anxious depressed"`
	Exercise         string `json:"exercise" validate:"required,oneof=none light moderate intense"`
}

type CreateRiskAssessmentRequest struct {
	Answers RiskAnswersRequest `json:"answers"`
}
