package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson"
)

type SymptomRepository interface {
	Create(ctx context.Context, symptom *entity.Symptom) error
	FindByID(ctx context.Context, id string) (*entity.Symptom, error)
	FindLatest(ctx context.Context, userID string) (*entity.Symptom, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
	Update(ctx context.Context, id string, update bson.M) (*entity.Symptom, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindBySeverity(ctx context.Context, userID string, severity entity.Severity) ([]entity.Symptom, error)
	FindRecent(ctx context.Context, userID string, days int) ([]entity.Symptom, error)
	Stats(ctx context.Context, userID string) (*entity.SymptomStats, error)
}
