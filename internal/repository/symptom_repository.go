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

// severityWeights backs the average-severity statistic.
var severityWeights = map[entity.Severity]float64{
	entity.SeverityMild:     1,
	entity.SeverityModerate: 2,
	entity.SeveritySevere:   3,
}

type symptomRepository struct {
	coll *mongo.Collection
}

func NewSymptomRepository(db *mongo.Database) repository.SymptomRepository {
	return &symptomRepository{coll: db.Collection("symptoms")}
}

func (r *symptomRepository) Create(ctx context.Context, symptom *entity.Symptom) error {
	now := time.Now()
	symptom.CreatedAt = now
	symptom.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, symptom)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		symptom.ID = oid
	}
	return nil
}

func (r *symptomRepository) FindByID(ctx context.Context, id string) (*entity.Symptom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.Symptom](r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *symptomRepository) FindLatest(ctx context.Context, userID string) (*entity.Symptom, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return decodeOne[entity.Symptom](r.coll.FindOne(ctx, bson.M{"userId": userID}, opts))
}

func (r *symptomRepository) List(ctx context.Context, userID string, params map[string]string) (apifeatures.PagedResult, error) {
	features := apifeatures.New(bson.M{"userId": userID}, params, entity.SymptomSchema).
		Pagination().
		Fields().
		Sort()
	return features.Execute(ctx, r.coll, "symptoms")
}

func (r *symptomRepository) Update(ctx context.Context, id string, update bson.M) (*entity.Symptom, error) {
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
	return decodeOne[entity.Symptom](res)
}

func (r *symptomRepository) Delete(ctx context.Context, id string) (int64, error) {
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

func (r *symptomRepository) FindBySeverity(ctx context.Context, userID string, severity entity.Severity) ([]entity.Symptom, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"userId": userID, "severity": severity},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	symptoms := make([]entity.Symptom, 0)
	if err := cursor.All(ctx, &symptoms); err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (r *symptomRepository) FindRecent(ctx context.Context, userID string, days int) ([]entity.Symptom, error) {
	since := time.Now().AddDate(0, 0, -days)
	cursor, err := r.coll.Find(ctx,
		bson.M{"userId": userID, "createdAt": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	symptoms := make([]entity.Symptom, 0)
	if err := cursor.All(ctx, &symptoms); err != nil {
		return nil, err
	}
	return symptoms, nil
}

// Stats walks the user's entries once, counting flag occurrences and
// averaging severity. The per-user volume is small enough that an
// aggregation pipeline would buy nothing over a single pass here.
func (r *symptomRepository) Stats(ctx context.Context, userID string) (*entity.SymptomStats, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	entries := make([]entity.Symptom, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	stats := &entity.SymptomStats{
		TotalEntries:       int64(len(entries)),
		MostCommonSymptoms: map[string]int64{},
	}
	if len(entries) == 0 {
		return stats, nil
	}

	var severitySum float64
	for _, entry := range entries {
		severitySum += severityWeights[entry.Severity]
		countFlags(stats.MostCommonSymptoms, entry.Symptoms)
	}
	stats.AverageSeverity = severitySum / float64(len(entries))
	return stats, nil
}

func countFlags(counts map[string]int64, flags entity.SymptomFlags) {
	add := func(on bool, name string) {
		if on {
			counts[name]++
		}
	}
	add(flags.Bloating, "bloating")
	add(flags.PelvicPain, "pelvicPain")
	add(flags.IrregularPeriods, "irregularPeriods")
	add(flags.HeavyBleeding, "heavyBleeding")
	add(flags.Fatigue, "fatigue")
	add(flags.MoodSwings, "moodSwings")
	add(flags.BreastTenderness, "breastTenderness")
	add(flags.BackPain, "backPain")
	add(flags.Nausea, "nausea")
	add(flags.WeightGain, "weightGain")
}
