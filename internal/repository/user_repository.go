package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection("users")}
}

// decodeOne maps the no-documents case to (nil, nil) so callers branch
// on presence, not on driver errors.
func decodeOne[T any](res *mongo.SingleResult) (*T, error) {
	var out T
	if err := res.Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.User](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return decodeOne[entity.User](r.coll.FindOne(ctx, bson.M{"email": email}))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return decodeOne[entity.User](r.coll.FindOne(ctx, bson.M{"username": username}))
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return decodeOne[entity.User](r.coll.FindOne(ctx, bson.M{"resetPasswordToken": token}))
}

func (r *userRepository) Update(ctx context.Context, id string, update bson.M) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	update["updatedAt"] = time.Now()
	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	return decodeOne[entity.User](res)
}

func (r *userRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *userRepository) List(ctx context.Context, base bson.M, params map[string]string) (apifeatures.PagedResult, error) {
	features := apifeatures.New(base, params, entity.UserSchema).
		Pagination().
		Fields().
		Search().
		Filteration().
		Sort()
	return features.Execute(ctx, r.coll, "users")
}
