package dto

type SignupPatientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`

	Name               string   `json:"name"`
	Age                int      `json:"age" validate:"omitempty,gte=0,lte=120"`
	Region             string   `json:"region"`
	MenopauseStage     string   `json:"menopauseStage"`
	CystSize           float64  `json:"cystSize" validate:"omitempty,gte=0"`
	CystGrowth         string   `json:"cystGrowth"`
	CA125Level         float64  `json:"ca125Level" validate:"omitempty,gte=0"`
	UltrasoundFeatures string   `json:"ultrasoundFeatures"`
	Symptoms           []string `json:"symptoms"`
}

type SigninPatientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePatientProfileRequest struct {
	Name               *string  `json:"name"`
	Phone              *string  `json:"phone"`
	Age                *int     `json:"age" validate:"omitempty,gte=0,lte=120"`
	Region             *string  `json:"region"`
	MenopauseStage     *string  `json:"menopauseStage"`
	CystSize           *float64 `json:"cystSize" validate:"omitempty,gte=0"`
	CystGrowth         *string  `json:"cystGrowth"`
	CA125Level         *float64 `json:"ca125Level" validate:"omitempty,gte=0"`
	UltrasoundFeatures *string  `json:"ultrasoundFeatures"`
	Symptoms           []string `json:"symptoms"`
}

// CreatePatientWithAssessmentRequest registers a patient and immediately
// runs the risk predictor against the supplied clinical profile.
type CreatePatientWithAssessmentRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`

	Name               string   `json:"name"`
	Age                int      `json:"age" validate:"omitempty,gte=0,lte=120"`
	Region             string   `json:"region"`
	MenopauseStage     string   `json:"menopauseStage"`
	CystSize           float64  `json:"cystSize" validate:"omitempty,gte=0"`
	CystGrowth         string   `json:"cystGrowth"`
	CA125Level         float64  `json:"ca125Level" validate:"omitempty,gte=0"`
	UltrasoundFeatures string   `json:"ultrasoundFeatures"`
	Symptoms           []string `json:"symptoms"`
}
