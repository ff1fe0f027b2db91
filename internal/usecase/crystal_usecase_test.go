package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
)

func TestSessionTitleFrom(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Hello", "Hello"},
		{"I have a question about cysts today", "I have a question about"},
		{"Supercalifragilisticexpialidocious antidisestablishmentarianism floccinaucinihilipilification", "Supercalifragilisticexpialidoc..."},
		{"", ""},
	}
	for _, c := range cases {
		if got := sessionTitleFrom(c.message); got != c.want {
			t.Errorf("title for %q: got %q, want %q", c.message, got, c.want)
		}
	}
}

func TestSessionTitleTruncatesOnRunes(t *testing.T) {
	long := strings.Repeat("é", 35)
	got := sessionTitleFrom(long)
	want := strings.Repeat("é", 30) + "..."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated title %q is not valid UTF-8", got)
	}
}

func TestCrystalTalkCreatesSession(t *testing.T) {
	repo := &fakeCrystalRepo{}
	completer := &fakeCompleter{reply: "Ovarian cysts are fluid-filled sacs."}
	uc := NewCrystalUsecase(testLogger(), repo, completer)

	reply, err := uc.Talk(context.Background(), "u1", "", "What is an ovarian cyst and should I worry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response != completer.reply {
		t.Errorf("got response %q", reply.Response)
	}
	if reply.SessionID == "" || len(reply.SessionID) != 32 {
		t.Errorf("got session id %q, want 32 hex chars", reply.SessionID)
	}
	if reply.SessionTitle != "What is an ovarian cyst" {
		t.Errorf("got title %q", reply.SessionTitle)
	}

	if len(repo.sessions) != 1 {
		t.Fatal("session not persisted")
	}
	if len(repo.messages) != 2 {
		t.Fatalf("got %d messages, want a user and an assistant message", len(repo.messages))
	}
	userMsg, assistantMsg := repo.messages[0], repo.messages[1]
	if userMsg.MessageType != entity.CrystalMessageUser || userMsg.Message == "" || userMsg.Response != "" {
		t.Errorf("user message malformed: %+v", userMsg)
	}
	if assistantMsg.MessageType != entity.CrystalMessageAssistant || assistantMsg.Response == "" || assistantMsg.Message != "" {
		t.Errorf("assistant message malformed: %+v", assistantMsg)
	}
	if got := assistantMsg.Timestamp.Sub(userMsg.Timestamp); got != time.Millisecond {
		t.Errorf("assistant timestamp offset %v, want 1ms", got)
	}
	if repo.bumpedSession != reply.SessionID || repo.bumpedMessage != "What is an ovarian cyst and should I worry" {
		t.Errorf("session not bumped with raw input: %q %q", repo.bumpedSession, repo.bumpedMessage)
	}
}

func TestCrystalTalkTranscriptOrder(t *testing.T) {
	repo := &fakeCrystalRepo{}
	completer := &fakeCompleter{reply: "first answer"}
	uc := NewCrystalUsecase(testLogger(), repo, completer)

	reply, err := uc.Talk(context.Background(), "u1", "", "first question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completer.reply = "second answer"
	if _, err := uc.Talk(context.Background(), "u1", reply.SessionID, "second question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transcript := completer.transcript
	if len(transcript) != 4 {
		t.Fatalf("got %d transcript entries, want 4", len(transcript))
	}
	if transcript[0].Role != "system" || !strings.Contains(transcript[0].Content, "Crystal") {
		t.Errorf("first entry should be the system prompt: %+v", transcript[0])
	}
	if transcript[1].Role != "user" || transcript[1].Content != "first question" {
		t.Errorf("unexpected entry: %+v", transcript[1])
	}
	if transcript[2].Role != "assistant" || transcript[2].Content != "first answer" {
		t.Errorf("unexpected entry: %+v", transcript[2])
	}
	if transcript[3].Role != "user" || transcript[3].Content != "second question" {
		t.Errorf("unexpected entry: %+v", transcript[3])
	}

	if len(repo.messages) != 4 {
		t.Errorf("got %d stored messages, want 4", len(repo.messages))
	}
}

func TestCrystalTalkUnknownSession(t *testing.T) {
	uc := NewCrystalUsecase(testLogger(), &fakeCrystalRepo{}, &fakeCompleter{reply: "hi"})

	if _, err := uc.Talk(context.Background(), "u1", "does-not-exist", "hello"); !errors.Is(err, ErrCrystalSessionNotFound) {
		t.Errorf("got %v, want ErrCrystalSessionNotFound", err)
	}
}

func TestCrystalTalkSessionIsolation(t *testing.T) {
	repo := &fakeCrystalRepo{}
	uc := NewCrystalUsecase(testLogger(), repo, &fakeCompleter{reply: "hi"})

	reply, err := uc.Talk(context.Background(), "owner", "", "private matter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.Talk(context.Background(), "intruder", reply.SessionID, "let me in"); !errors.Is(err, ErrCrystalSessionNotFound) {
		t.Errorf("got %v, want ErrCrystalSessionNotFound for another user's session", err)
	}
	if _, _, err := uc.SessionWithMessages(context.Background(), "intruder", reply.SessionID); !errors.Is(err, ErrCrystalSessionNotFound) {
		t.Errorf("got %v, want ErrCrystalSessionNotFound for another user's session", err)
	}
}

func TestCrystalDeleteSessionCascades(t *testing.T) {
	repo := &fakeCrystalRepo{}
	uc := NewCrystalUsecase(testLogger(), repo, &fakeCompleter{reply: "hi"})

	reply, err := uc.Talk(context.Background(), "u1", "", "hello there")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.DeleteSession(context.Background(), "u1", reply.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedMessages != reply.SessionID {
		t.Error("messages should be deleted with the session")
	}
	if repo.deletedSession != reply.SessionID {
		t.Error("session document should be deleted")
	}
}
