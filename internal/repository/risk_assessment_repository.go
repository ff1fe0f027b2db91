package repository

import (
	"context"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type riskAssessmentRepository struct {
	coll *mongo.Collection
}

func NewRiskAssessmentRepository(db *mongo.Database) repository.RiskAssessmentRepository {
	return &riskAssessmentRepository{coll: db.Collection("risk_assessments")}
}

func (r *riskAssessmentRepository) Create(ctx context.Context, assessment *entity.RiskAssessment) error {
	now := time.Now()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, assessment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		assessment.ID = oid
	}
	return nil
}

func (r *riskAssessmentRepository) FindByID(ctx context.Context, id string) (*entity.RiskAssessment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.RiskAssessment](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *riskAssessmentRepository) FindLatest(ctx context.Context, userID string) (*entity.RiskAssessment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return decodeOne[entity.RiskAssessment](r.coll.FindOne(ctx, bson.M{"userId": userID}, opts))
}

func (r *riskAssessmentRepository) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	features := apifeatures.New(bson.M{"userId": userID}, params, entity.RiskAssessmentSchema).
		Pagination().
		Fields().
		Sort()
	return features.Execute(ctx, r.coll, "assessments")
}
