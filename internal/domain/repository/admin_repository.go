package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id string) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Update(ctx context.Context, id string, update bson.M) (*entity.Admin, error)
}
