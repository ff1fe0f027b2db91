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

type crystalRepository struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

func NewCrystalRepository(db *mongo.Database) repository.CrystalRepository {
	return &crystalRepository{
		sessions: db.Collection("crystal_sessions"),
		messages: db.Collection("crystal_messages"),
	}
}

func (r *crystalRepository) CreateSession(ctx context.Context, session *entity.CrystalSession) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	res, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

func (r *crystalRepository) FindSession(ctx context.Context, sessionID, userID string) (*entity.CrystalSession, error) {
	return decodeOne[entity.CrystalSession](r.sessions.FindOne(ctx, bson.M{
		"sessionId": sessionID,
		"userId":    userID,
	}))
}

func (r *crystalRepository) SessionsForUser(ctx context.Context, userID string) ([]entity.CrystalSession, error) {
	cursor, err := r.sessions.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	sessions := make([]entity.CrystalSession, 0)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *crystalRepository) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.sessions.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	return err
}

func (r *crystalRepository) BumpSession(ctx context.Context, sessionID, lastMessage string) error {
	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{
			"$set": bson.M{"lastMessage": lastMessage, "updatedAt": time.Now()},
			"$inc": bson.M{"messageCount": 2},
		},
	)
	return err
}

func (r *crystalRepository) CreateMessage(ctx context.Context, message *entity.CrystalMessage) error {
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now
	res, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

// MessagesForSession returns the transcript in chronological order.
func (r *crystalRepository) MessagesForSession(ctx context.Context, sessionID string) ([]entity.CrystalMessage, error) {
	cursor, err := r.messages.Find(ctx,
		bson.M{"sessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	messages := make([]entity.CrystalMessage, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *crystalRepository) DeleteMessagesForSession(ctx context.Context, sessionID string) error {
	_, err := r.messages.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
