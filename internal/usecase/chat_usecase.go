package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"github.com/sirupsen/logrus"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageNotOwned = errors.New("you can only delete your own messages")
	ErrSelfMessage     = errors.New("cannot send a message to yourself")
)

type ChatUsecase interface {
	Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*entity.Message, error)
	MessagesBetween(ctx context.Context, userID, otherID string, params map[string]string) (apifeatures.PagedResult, error)
	Rooms(ctx context.Context, userID string) ([]entity.ChatRoom, error)
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	DeleteMessage(ctx context.Context, userID, id string) error
}

type chatUsecase struct {
	log  *logrus.Logger
	repo repository.ChatRepository
}

func NewChatUsecase(log *logrus.Logger, repo repository.ChatRepository) ChatUsecase {
	return &chatUsecase{
		log:  log,
		repo: repo,
	}
}

// canonicalParticipants sorts the pair so A→B and B→A resolve to the
// same room document.
func canonicalParticipants(a, b string) []string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair
}

func (u *chatUsecase) Send(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*entity.Message, error) {
	if req.ReceiverID == senderID {
		return nil, ErrSelfMessage
	}

	messageType := entity.MessageType(req.MessageType)
	if messageType == "" {
		messageType = entity.MessageText
	}

	message := &entity.Message{
		SenderID:    senderID,
		ReceiverID:  req.ReceiverID,
		Content:     req.Content,
		MessageType: messageType,
	}
	if err := u.repo.CreateMessage(ctx, message); err != nil {
		u.log.Warnf("Failed to save message from %s to %s: %+v", senderID, req.ReceiverID, err)
		return nil, err
	}

	participants := canonicalParticipants(senderID, req.ReceiverID)
	if err := u.repo.UpsertRoom(ctx, participants, message.ID.Hex(), req.ReceiverID); err != nil {
		u.log.Warnf("Failed to update chat room for %v: %+v", participants, err)
	}

	return message, nil
}

func (u *chatUsecase) MessagesBetween(ctx context.Context, userID, otherID string, params map[string]string) (apifeatures.PagedResult, error) {
	return u.repo.MessagesBetween(ctx, userID, otherID, params)
}

func (u *chatUsecase) Rooms(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	return u.repo.RoomsForUser(ctx, userID)
}

func (u *chatUsecase) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	return u.repo.MarkRead(ctx, senderID, receiverID)
}

func (u *chatUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return u.repo.UnreadCount(ctx, userID)
}

func (u *chatUsecase) DeleteMessage(ctx context.Context, userID, id string) error {
	message, err := u.repo.FindMessageByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find message %s: %+v", id, err)
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}
	if message.SenderID != userID {
		return ErrMessageNotOwned
	}

	deleted, err := u.repo.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrMessageNotFound
	}
	return nil
}
