package dto

import (
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

// UserResponse is the public shape of a user account. Credentials and
// reset-token fields never appear here.
type UserResponse struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Name      string            `json:"name,omitempty"`
	Email     string            `json:"email"`
	Status    entity.UserStatus `json:"status"`
	Role      entity.UserRole   `json:"role"`
	Phone     string            `json:"phone,omitempty"`
	LastLogin *time.Time        `json:"lastLogin,omitempty"`
	Avatar    string            `json:"avatar,omitempty"`
	Bio       string            `json:"bio,omitempty"`
	Age       int               `json:"age,omitempty"`
	Hospital  string            `json:"hospital,omitempty"`
	Region    string            `json:"region,omitempty"`
	RiskLevel entity.RiskLevel  `json:"riskLevel,omitempty"`

	HealthPreferences *entity.HealthPreferences `json:"healthPreferences,omitempty"`
	EmergencyContact  *entity.EmergencyContact  `json:"emergencyContact,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PatientResponse struct {
	ID          string               `json:"id"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone,omitempty"`
	Status      entity.PatientStatus `json:"status"`
	MedicalData entity.MedicalData   `json:"medicalData"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type AdminResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
