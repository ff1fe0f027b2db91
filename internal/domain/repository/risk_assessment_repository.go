package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"
)

type RiskAssessmentRepository interface {
	Create(ctx context.Context, assessment *entity.RiskAssessment) error
	FindByID(ctx context.Context, id string) (*entity.RiskAssessment, error)
	FindLatest(ctx context.Context, userID string) (*entity.RiskAssessment, error)
	List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error)
}
