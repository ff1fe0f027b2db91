package dto

type RegisterUserRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"omitempty,oneof=user peer_sister nurse admin"`
	Name         string `json:"name" validate:"omitempty,max=255"`
	Age          int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	Hospital     string `json:"hospital"`
	Region       string `json:"region"`
	ReferralCode string `json:"referralCode"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Age      *int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	Hospital *string `json:"hospital"`
	Region   *string `json:"region"`

	HealthPreferences *HealthPreferencesRequest `json:"healthPreferences"`
	EmergencyContact  *EmergencyContactRequest  `json:"emergencyContact"`
}

type HealthPreferencesRequest struct {
	Notifications bool   `json:"notifications"`
	PrivacyLevel  string `json:"privacyLevel" validate:"omitempty,oneof=public private friends"`
	Language      string `json:"language"`
}

type EmergencyContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
