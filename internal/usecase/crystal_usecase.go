package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/domain/repository"
	"github.com/Moraarn/sistercheck/internal/service"

	"github.com/sirupsen/logrus"
)

var ErrCrystalSessionNotFound = errors.New("chat session not found")

// crystalSystemPrompt frames every completion request. It is sent as the
// first transcript entry and never stored.
const crystalSystemPrompt = "You are Crystal, a compassionate women's health assistant for the SisterCheck app. " +
	"You specialize in ovarian cyst awareness, menstrual health, and general gynecological wellness. " +
	"Provide clear, supportive, medically sound information in plain language. " +
	"Always remind users that you are not a substitute for professional medical advice, " +
	"and urge them to seek immediate care for severe or sudden symptoms. " +
	"Keep responses focused, warm, and free of judgement."

const (
	sessionTitleWords    = 5
	sessionTitleMaxChars = 30
)

// CrystalReply is what the Talk operation hands back to the client.
type CrystalReply struct {
	Response     string `json:"response"`
	SessionID    string `json:"sessionId"`
	SessionTitle string `json:"sessionTitle"`
}

type CrystalUsecase interface {
	Talk(ctx context.Context, userID, sessionID, message string) (*CrystalReply, error)
	Sessions(ctx context.Context, userID string) ([]entity.CrystalSession, error)
	SessionWithMessages(ctx context.Context, userID, sessionID string) (*entity.CrystalSession, []entity.CrystalMessage, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
}

type crystalUsecase struct {
	log       *logrus.Logger
	repo      repository.CrystalRepository
	completer service.ChatCompleter
}

func NewCrystalUsecase(
	log *logrus.Logger,
	repo repository.CrystalRepository,
	completer service.ChatCompleter,
) CrystalUsecase {
	return &crystalUsecase{
		log:       log,
		repo:      repo,
		completer: completer,
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// sessionTitleFrom derives a short display title from the opening
// message: its first five words, truncated to thirty characters.
func sessionTitleFrom(message string) string {
	words := strings.Fields(message)
	if len(words) > sessionTitleWords {
		words = words[:sessionTitleWords]
	}
	title := strings.Join(words, " ")
	if runes := []rune(title); len(runes) > sessionTitleMaxChars {
		title = string(runes[:sessionTitleMaxChars]) + "..."
	}
	return title
}

func (u *crystalUsecase) resolveSession(ctx context.Context, userID, sessionID, message string) (*entity.CrystalSession, error) {
	if sessionID != "" {
		session, err := u.repo.FindSession(ctx, sessionID, userID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrCrystalSessionNotFound
		}
		return session, nil
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	session := &entity.CrystalSession{
		UserID:    userID,
		SessionID: id,
		Title:     sessionTitleFrom(message),
	}
	if err := u.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// transcriptFor rebuilds the completion transcript: the system prompt,
// every prior exchange in timestamp order, then the new user turn.
func transcriptFor(history []entity.CrystalMessage, message string) []service.ChatMessage {
	transcript := make([]service.ChatMessage, 0, len(history)+2)
	transcript = append(transcript, service.ChatMessage{Role: "system", Content: crystalSystemPrompt})
	for _, m := range history {
		if m.MessageType == entity.CrystalMessageUser {
			transcript = append(transcript, service.ChatMessage{Role: "user", Content: m.Message})
		} else {
			transcript = append(transcript, service.ChatMessage{Role: "assistant", Content: m.Response})
		}
	}
	return append(transcript, service.ChatMessage{Role: "user", Content: message})
}

func (u *crystalUsecase) Talk(ctx context.Context, userID, sessionID, message string) (*CrystalReply, error) {
	session, err := u.resolveSession(ctx, userID, sessionID, message)
	if err != nil {
		return nil, err
	}

	history, err := u.repo.MessagesForSession(ctx, session.SessionID)
	if err != nil {
		u.log.Warnf("Failed to load chat history for session %s: %+v", session.SessionID, err)
		return nil, err
	}

	reply, err := u.completer.Complete(ctx, transcriptFor(history, message))
	if err != nil {
		u.log.Warnf("Chat completion failed for session %s: %+v", session.SessionID, err)
		return nil, err
	}

	// The assistant message gets a timestamp one millisecond after the
	// user message so ordering by timestamp never interleaves exchanges.
	now := time.Now()
	userMsg := &entity.CrystalMessage{
		UserID:      userID,
		SessionID:   session.SessionID,
		Message:     message,
		MessageType: entity.CrystalMessageUser,
		Timestamp:   now,
	}
	assistantMsg := &entity.CrystalMessage{
		UserID:      userID,
		SessionID:   session.SessionID,
		Response:    reply,
		MessageType: entity.CrystalMessageAssistant,
		Timestamp:   now.Add(time.Millisecond),
	}
	if err := u.repo.CreateMessage(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := u.repo.CreateMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := u.repo.BumpSession(ctx, session.SessionID, message); err != nil {
		u.log.Warnf("Failed to bump session %s: %+v", session.SessionID, err)
	}

	return &CrystalReply{
		Response:     reply,
		SessionID:    session.SessionID,
		SessionTitle: session.Title,
	}, nil
}

func (u *crystalUsecase) Sessions(ctx context.Context, userID string) ([]entity.CrystalSession, error) {
	return u.repo.SessionsForUser(ctx, userID)
}

func (u *crystalUsecase) SessionWithMessages(ctx context.Context, userID, sessionID string) (*entity.CrystalSession, []entity.CrystalMessage, error) {
	session, err := u.repo.FindSession(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrCrystalSessionNotFound
	}
	messages, err := u.repo.MessagesForSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}

func (u *crystalUsecase) DeleteSession(ctx context.Context, userID, sessionID string) error {
	session, err := u.repo.FindSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrCrystalSessionNotFound
	}
	if err := u.repo.DeleteMessagesForSession(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete messages for session %s: %+v", sessionID, err)
		return err
	}
	return u.repo.DeleteSession(ctx, sessionID)
}
