package entity

import (
	"time"

	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInactive  UserStatus = "inactive"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RolePeerSister UserRole = "peer_sister"
	RoleNurse      UserRole = "nurse"
	RoleAdmin      UserRole = "admin"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

type HealthPreferences struct {
	Notifications bool   `bson:"notifications" json:"notifications"`
	PrivacyLevel  string `bson:"privacyLevel" json:"privacyLevel"`
	Language      string `bson:"language" json:"language"`
}

type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone" json:"phone"`
	Relationship string `bson:"relationship" json:"relationship"`
}

// User is a general account: patients-facing users, peer sisters, nurses
// and admins created through the user signup flow.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Status   UserStatus         `bson:"status" json:"status"`
	Role     UserRole           `bson:"role" json:"role"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`

	LastLogin  *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Avatar     string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio        string     `bson:"bio,omitempty" json:"bio,omitempty"`
	ReferredBy string     `bson:"referredBy,omitempty" json:"referredBy,omitempty"`

	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	Hospital  string    `bson:"hospital,omitempty" json:"hospital,omitempty"`
	Region    string    `bson:"region,omitempty" json:"region,omitempty"`
	RiskLevel RiskLevel `bson:"riskLevel,omitempty" json:"riskLevel,omitempty"`

	HealthPreferences *HealthPreferences `bson:"healthPreferences,omitempty" json:"healthPreferences,omitempty"`
	EmergencyContact  *EmergencyContact  `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`

	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSchema lists the queryable attributes for list endpoints.
var UserSchema = apifeatures.NewSchema(
	"_id", "username", "name", "email", "status", "role", "phone",
	"lastLogin", "avatar", "bio", "referredBy", "age", "hospital",
	"region", "riskLevel", "createdAt", "updatedAt",
)
