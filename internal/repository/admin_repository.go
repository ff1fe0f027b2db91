package repository

import (
	"context"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type adminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) repository.AdminRepository {
	return &adminRepository{coll: db.Collection("admins")}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, admin)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.Admin](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	return decodeOne[entity.Admin](r.coll.FindOne(ctx, bson.M{"email": email}))
}

func (r *adminRepository) Update(ctx context.Context, id string, update bson.M) (*entity.Admin, error) {
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
	return decodeOne[entity.Admin](res)
}
