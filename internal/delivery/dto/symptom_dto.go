package dto

type SymptomFlagsRequest struct {
	Bloating         bool   `json:"bloating"`
	PelvicPain       bool   `json:"pelvicPain"`
	IrregularPeriods bool   `json:"irregularPeriods"`
	HeavyBleeding    bool   `json:"heavyBleeding"`
	Fatigue          bool   `json:"fatigue"`
	MoodSwings       bool   `json:"moodSwings"`
	BreastTenderness bool   `json:"breastTenderness"`
	BackPain         bool   `json:"backPain"`
	Nausea           bool   `json:"nausea"`
	WeightGain       bool   `json:"weightGain"`
	OtherSymptoms    string `json:"otherSymptoms"`
}

type CreateSymptomRequest struct {
	Symptoms SymptomFlagsRequest `json:"symptoms"`
	Severity string              `json:"severity" validate:"required,oneof=Mild Moderate Severe"`
	Duration string              `json:"duration" validate:"required"`
	Notes    string              `json:"notes"`
}

type UpdateSymptomRequest struct {
	Symptoms *SymptomFlagsRequest `json:"symptoms"`
	Severity *string              `json:"severity" validate:"omitempty,oneof=Mild Moderate Severe"`
	Duration *string              `json:"duration"`
	Notes    *string              `json:"notes"`
}
