package converter

import (
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

// UserToResponse converts a User entity to its public response shape.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                user.ID.Hex(),
		Username:          user.Username,
		Name:              user.Name,
		Email:             user.Email,
		Status:            user.Status,
		Role:              user.Role,
		Phone:             user.Phone,
		LastLogin:         user.LastLogin,
		Avatar:            user.Avatar,
		Bio:               user.Bio,
		Age:               user.Age,
		Hospital:          user.Hospital,
		Region:            user.Region,
		RiskLevel:         user.RiskLevel,
		HealthPreferences: user.HealthPreferences,
		EmergencyContact:  user.EmergencyContact,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}
