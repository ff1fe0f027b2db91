package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson"
)

type CareTemplateRepository interface {
	Create(ctx context.Context, template *entity.CareTemplate) error
	FindByID(ctx context.Context, id string) (*entity.CareTemplate, error)
	FindLatest(ctx context.Context, userID string) (*entity.CareTemplate, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
	Update(ctx context.Context, id string, update bson.M) (*entity.CareTemplate, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindByStatus(ctx context.Context, userID string, status entity.CareTemplateStatus) ([]entity.CareTemplate, error)
	Stats(ctx context.Context, userID string) (*entity.CareTemplateStats, error)
}
