package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFallbackResponseKeywordPriority(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Tell me about ovarian cysts", "fluid-filled sacs"},
		// Cyst wins even when other keywords are present.
		{"my cyst causes pain every period", "fluid-filled sacs"},
		{"My PERIOD is irregular", "21-35 days"},
		{"my cycle is all over the place", "21-35 days"},
		{"everything hurts", "Pelvic pain can have various causes"},
		{"what symptoms should I watch", "Common ovarian cyst symptoms"},
		{"hello", "I'm Crystal"},
		{"", "I'm Crystal"},
	}
	for _, c := range cases {
		got := FallbackResponse(c.message)
		if got == "" {
			t.Fatalf("%q: fallback must never be empty", c.message)
		}
		if !strings.Contains(got, c.want) {
			t.Errorf("%q: got %q, want it to contain %q", c.message, got, c.want)
		}
	}
}

func TestFallbackResponseDeterministic(t *testing.T) {
	if FallbackResponse("cyst question") != FallbackResponse("cyst question") {
		t.Error("fallback must be deterministic")
	}
}

func TestCompleteWithoutAPIKeyUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the network must not be touched without an API key")
	}))
	defer server.Close()

	completer := NewMistralClient(server.URL, "")
	reply, err := completer.Complete(context.Background(), []ChatMessage{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "tell me about my cyst"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "fluid-filled sacs") {
		t.Errorf("got %q, want the cyst fallback for the last message", reply)
	}
}

func TestCompleteSendsTranscript(t *testing.T) {
	var captured mistralRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"choices":[{"message":{"content":"Hello from the model"}}]}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	completer := NewMistralClient(server.URL, "key-123")
	reply, err := completer.Complete(context.Background(), []ChatMessage{
		{Role: "system", Content: "prompt"},
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hello from the model" {
		t.Errorf("got %q", reply)
	}
	if auth != "Bearer key-123" {
		t.Errorf("got auth %q", auth)
	}
	if captured.Model != "mistral-large-latest" || captured.MaxTokens != 1000 {
		t.Errorf("unexpected request parameters: %+v", captured)
	}
	if captured.Temperature != 0.7 || captured.TopP != 0.9 {
		t.Errorf("unexpected sampling parameters: %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[1].Content != "hi" {
		t.Errorf("transcript not forwarded: %+v", captured.Messages)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	completer := NewMistralClient(server.URL, "key-123")
	_, err := completer.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should carry status and body: %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"choices":[]}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer server.Close()

	completer := NewMistralClient(server.URL, "key-123")
	reply, err := completer.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "couldn't generate a response") {
		t.Errorf("got %q, want the apology reply", reply)
	}
}
