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

type chatRepository struct {
	messages *mongo.Collection
	rooms    *mongo.Collection
}

func NewChatRepository(db *mongo.Database) repository.ChatRepository {
	return &chatRepository{
		messages: db.Collection("messages"),
		rooms:    db.Collection("chat_rooms"),
	}
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
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

func (r *chatRepository) FindMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return decodeOne[entity.Message](r.messages.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *chatRepository) DeleteMessage(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := r.messages.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MessagesBetween pages through the conversation in both directions,
// newest first by default.
func (r *chatRepository) MessagesBetween(ctx context.Context, userID1, userID2 string, params map[string]string) (apifeatures.PagedResult, error) {
	base := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userID1, "receiverId": userID2},
			bson.M{"senderId": userID2, "receiverId": userID1},
		},
	}
	features := apifeatures.New(base, params, entity.MessageSchema).
		Pagination().
		Sort()
	return features.Execute(ctx, r.messages, "messages")
}

func (r *chatRepository) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	res, err := r.messages.UpdateMany(ctx,
		bson.M{"senderId": senderID, "receiverId": receiverID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}

	participants := []string{senderID, receiverID}
	if participants[0] > participants[1] {
		participants[0], participants[1] = participants[1], participants[0]
	}
	if _, err := r.rooms.UpdateOne(ctx,
		bson.M{"participants": participants},
		bson.M{"$set": bson.M{"unreadCount." + receiverID: 0, "updatedAt": time.Now()}},
	); err != nil {
		return res.ModifiedCount, err
	}
	return res.ModifiedCount, nil
}

func (r *chatRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return r.messages.CountDocuments(ctx, bson.M{"receiverId": userID, "isRead": false})
}

func (r *chatRepository) UpsertRoom(ctx context.Context, participants []string, lastMessageID, receiverID string) error {
	now := time.Now()
	_, err := r.rooms.UpdateOne(ctx,
		bson.M{"participants": participants},
		bson.M{
			"$set": bson.M{
				"lastMessage": lastMessageID,
				"updatedAt":   now,
			},
			"$inc":         bson.M{"unreadCount." + receiverID: 1},
			"$setOnInsert": bson.M{"participants": participants, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *chatRepository) RoomsForUser(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	cursor, err := r.rooms.Find(ctx,
		bson.M{"participants": userID},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	rooms := make([]entity.ChatRoom, 0)
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
