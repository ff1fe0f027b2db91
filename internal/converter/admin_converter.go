package converter

import (
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

// AdminToResponse converts an Admin entity to its public response shape.
func AdminToResponse(admin *entity.Admin) *dto.AdminResponse {
	if admin == nil {
		return nil
	}
	return &dto.AdminResponse{
		ID:          admin.ID.Hex(),
		Username:    admin.Username,
		Email:       admin.Email,
		Role:        admin.Role,
		Permissions: admin.Permissions,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}
