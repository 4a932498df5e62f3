// Package response writes the JSON envelope shared by every HTTP endpoint.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// retryAfterSeconds is advertised on store_unavailable responses.
const retryAfterSeconds = 5

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind      model.ErrorKind `json:"kind"`
	Message   string          `json:"message"`
	Retryable bool            `json:"retryable"`
}

// JSON writes a successful envelope with data.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

// Error writes a failure envelope for err. Untyped errors are reported as a
// generic internal error so their details never reach the client.
func Error(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	if kind.Retryable() {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}

	write(w, Status(kind), envelope{
		Success: false,
		Error: &errorBody{
			Kind:      kind,
			Message:   model.MessageOf(err),
			Retryable: kind.Retryable(),
		},
	})
}

// Status maps an error kind to its HTTP status code.
func Status(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation, model.KindInvalidCompletion:
		return http.StatusBadRequest
	case model.KindUnauthorized, model.KindInvalidCredentials:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindDuplicateEmail:
		return http.StatusConflict
	case model.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
