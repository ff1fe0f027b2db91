package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestEnvelopeSpreadsData(t *testing.T) {
	body := Envelope(200, "ok", M{"user": "rose", "token": "abc"}, nil)

	if body["status"] != "success" || body["success"] != true {
		t.Errorf("unexpected status fields: %v", body)
	}
	if body["message"] != "ok" {
		t.Errorf("got message %v", body["message"])
	}
	if body["user"] != "rose" || body["token"] != "abc" {
		t.Error("data fields must be spread into the top level")
	}
	if _, ok := body["data"]; ok {
		t.Error("data must not be nested under a data key")
	}
	if _, ok := body["errors"]; ok {
		t.Error("errors key should be absent when there are none")
	}
}

func TestEnvelopeError(t *testing.T) {
	body := Envelope(422, "Validation failed", nil, []string{"email is required"})

	if body["status"] != "error" || body["success"] != false {
		t.Errorf("unexpected status fields: %v", body)
	}
	errs, ok := body["errors"].([]string)
	if !ok || len(errs) != 1 {
		t.Errorf("got errors %v", body["errors"])
	}
}

func TestErrorHelpersDefaultMessages(t *testing.T) {
	cases := []struct {
		name    string
		write   func(w *httptest.ResponseRecorder)
		code    int
		message string
	}{
		{"bad request", func(w *httptest.ResponseRecorder) { BadRequest(w, "") }, 400, "Bad request"},
		{"unauthorized", func(w *httptest.ResponseRecorder) { Unauthorized(w, "") }, 401, "Unauthorized"},
		{"forbidden", func(w *httptest.ResponseRecorder) { Forbidden(w, "") }, 403, "Forbidden"},
		{"not found", func(w *httptest.ResponseRecorder) { NotFound(w, "") }, 404, "Resource not found"},
		{"internal", func(w *httptest.ResponseRecorder) { InternalServerError(w, "") }, 500, "Something went wrong"},
		{"unavailable", func(w *httptest.ResponseRecorder) { ServiceUnavailable(w, "") }, 503, "Service unavailable"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c.write(w)

			if w.Code != c.code {
				t.Errorf("got status %d, want %d", w.Code, c.code)
			}
			if got := w.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("got content type %q", got)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["message"] != c.message {
				t.Errorf("got message %v, want %q", body["message"], c.message)
			}
			if body["success"] != false {
				t.Errorf("got success %v", body["success"])
			}
		})
	}
}

func TestSuccessWritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, 201, "Created", M{"id": "123"})

	if w.Code != 201 {
		t.Errorf("got status %d, want 201", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["id"] != "123" || body["status"] != "success" {
		t.Errorf("unexpected body: %v", body)
	}
}
