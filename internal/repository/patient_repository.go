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

type patientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) repository.PatientRepository {
	return &patientRepository{coll: db.Collection("patients")}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, patient)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		patient.ID = oid
	}
	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.Patient](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *patientRepository) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	return decodeOne[entity.Patient](r.coll.FindOne(ctx, bson.M{"auth.email": email}))
}

func (r *patientRepository) Update(ctx context.Context, id string, update bson.M) (*entity.Patient, error) {
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
	return decodeOne[entity.Patient](res)
}

func (r *patientRepository) List(ctx context.Context, page, limit int64) ([]entity.Patient, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	patients := make([]entity.Patient, 0, limit)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) Search(ctx context.Context, filter bson.M) ([]entity.Patient, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	patients := make([]entity.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}
