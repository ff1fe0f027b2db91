package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"
)

type ChatRepository interface {
	CreateMessage(ctx context.Context, message *entity.Message) error
	FindMessageByID(ctx context.Context, id string) (*entity.Message, error)
	DeleteMessage(ctx context.Context, id string) (int64, error)
	MessagesBetween(ctx context.Context, userID1, userID2 string, params map[string]string) (apifeatures.PagedResult, error)
	MarkRead(ctx context.Context, senderID, receiverID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	// UpsertRoom updates the room for the given canonical (sorted)
	// participant pair, pointing it at the latest message and bumping
	// the receiver's unread counter.
	UpsertRoom(ctx context.Context, participants []string, lastMessageID, receiverID string) error
	RoomsForUser(ctx context.Context, userID string) ([]entity.ChatRoom, error)
}
