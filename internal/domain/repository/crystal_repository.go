package repository

import (
	"context"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

type CrystalRepository interface {
	CreateSession(ctx context.Context, session *entity.CrystalSession) error
	// FindSession returns (nil, nil) when the session does not exist or
	// belongs to a different user.
	FindSession(ctx context.Context, sessionID, userID string) (*entity.CrystalSession, error)
	SessionsForUser(ctx context.Context, userID string) ([]entity.CrystalSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	// BumpSession overwrites lastMessage with the raw user input and
	// increments the running message counter by 2.
	BumpSession(ctx context.Context, sessionID, lastMessage string) error

	CreateMessage(ctx context.Context, message *entity.CrystalMessage) error
	MessagesForSession(ctx context.Context, sessionID string) ([]entity.CrystalMessage, error)
	DeleteMessagesForSession(ctx context.Context, sessionID string) error
}
