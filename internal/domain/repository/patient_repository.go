package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
	Update(ctx context.Context, id string, update bson.M) (*entity.Patient, error)
	List(ctx context.Context, page, limit int64) ([]entity.Patient, int64, error)
	Search(ctx context.Context, filter bson.M) ([]entity.Patient, error)
}
