package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository persists user accounts. Find methods return (nil, nil)
// when no document matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, id string, update bson.M) (*entity.User, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, base bson.M, params map[string]string) (apifeatures.PagedResult, error)
}
