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

type careTemplateRepository struct {
	coll *mongo.Collection
}

func NewCareTemplateRepository(db *mongo.Database) repository.CareTemplateRepository {
	return &careTemplateRepository{coll: db.Collection("care_templates")}
}

func (r *careTemplateRepository) Create(ctx context.Context, template *entity.CareTemplate) error {
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, template)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		template.ID = oid
	}
	return nil
}

func (r *careTemplateRepository) FindByID(ctx context.Context, id string) (*entity.CareTemplate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.CareTemplate](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *careTemplateRepository) FindLatest(ctx context.Context, userID string) (*entity.CareTemplate, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return decodeOne[entity.CareTemplate](r.coll.FindOne(ctx, bson.M{"userId": userID}, opts))
}

func (r *careTemplateRepository) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	features := apifeatures.New(bson.M{"userId": userID}, params, entity.CareTemplateSchema).
		Pagination().
		Fields().
		Sort()
	return features.Execute(ctx, r.coll, "careTemplates")
}

func (r *careTemplateRepository) Update(ctx context.Context, id string, update bson.M) (*entity.CareTemplate, error) {
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
	return decodeOne[entity.CareTemplate](res)
}

func (r *careTemplateRepository) Delete(ctx context.Context, id string) (int64, error) {
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

func (r *careTemplateRepository) FindByStatus(ctx context.Context, userID string, status entity.CareTemplateStatus) ([]entity.CareTemplate, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"userId": userID, "status": status},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	templates := make([]entity.CareTemplate, 0)
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Stats runs two small aggregations: counts per status and counts per
// predicted treatment plan.
func (r *careTemplateRepository) Stats(ctx context.Context, userID string) (*entity.CareTemplateStats, error) {
	stats := &entity.CareTemplateStats{
		TreatmentPlanDistribution: map[string]int64{},
	}

	statusCounts, err := r.groupCounts(ctx, userID, "$status")
	if err != nil {
		return nil, err
	}
	for status, count := range statusCounts {
		stats.TotalTemplates += count
		switch entity.CareTemplateStatus(status) {
		case entity.CareTemplatePending:
			stats.PendingCount = count
		case entity.CareTemplateApproved:
			stats.ApprovedCount = count
		case entity.CareTemplateInProgress:
			stats.InProgressCount = count
		case entity.CareTemplateCompleted:
			stats.CompletedCount = count
		}
	}

	planCounts, err := r.groupCounts(ctx, userID, "$prediction.treatmentPlan")
	if err != nil {
		return nil, err
	}
	stats.TreatmentPlanDistribution = planCounts

	return stats, nil
}

func (r *careTemplateRepository) groupCounts(ctx context.Context, userID string, groupKey string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{"_id": groupKey, "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.ID != "" {
			counts[row.ID] = row.Count
		}
	}
	return counts, nil
}
