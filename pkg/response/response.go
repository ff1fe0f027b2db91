package response

import (
	"encoding/json"
	"net/http"
)

// M holds data fields that are spread into the top level of the envelope.
type M map[string]interface{}

// Envelope is the wire format every endpoint responds with:
// {status, message, success, ...data, errors?}. Data fields are merged
// into the top level rather than nested under a "data" key.
func Envelope(statusCode int, message string, data M, errs interface{}) map[string]interface{} {
	success := statusCode >= 200 && statusCode < 300
	status := "error"
	if success {
		status = "success"
	}

	body := map[string]interface{}{
		"status":  status,
		"message": message,
		"success": success,
	}
	for k, v := range data {
		body[k] = v
	}
	if errs != nil {
		body["errors"] = errs
	}
	return body
}

func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, statusCode int, message string, data M) {
	JSON(w, statusCode, Envelope(statusCode, message, data, nil))
}

func Error(w http.ResponseWriter, statusCode int, message string, errs interface{}) {
	JSON(w, statusCode, Envelope(statusCode, message, nil, errs))
}

func ValidationError(w http.ResponseWriter, errs interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", errs)
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Something went wrong"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Service unavailable"
	}
	Error(w, http.StatusServiceUnavailable, message, nil)
}
