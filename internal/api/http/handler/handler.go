package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/query"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

type TaskService interface {
	Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch model.UpdateTaskParams) (model.Task, error)
	ToggleComplete(ctx context.Context, ownerID, taskID uuid.UUID, desired model.RawCompletion) (model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter query.Filter, sort query.SortKey) ([]model.Task, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (model.Stats, error)
}

type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.User, error)
	AvatarsEnabled() bool
	AvatarURL(user model.User) string
	UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error)
	GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
}

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errInvalidBody = model.NewValidationError("request body must be a valid JSON object")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decode(w, r, dst, false)
}

// decodeOptionalJSON is decodeJSON that accepts an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decode(w, r, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return model.NewValidationError("request body exceeds %d bytes", maxBodySize)
		}
		return errInvalidBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// userID returns the verified caller set by the Authenticate middleware.
func userID(cm model.ContextManager, r *http.Request) (uuid.UUID, error) {
	id, ok := cm.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, model.ErrUnauthorized
	}
	return id, nil
}

// pathID parses a UUID route parameter. Malformed IDs cannot exist, so they are not found.
func pathID(r *http.Request, name, entity string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, &model.Error{Kind: model.KindNotFound, Message: entity + " " + raw + " not found"}
	}
	return id, nil
}

// optionalString distinguishes an absent field from an explicit null or string.
// An explicit null decodes as the empty string.
type optionalString struct {
	Value string
	Set   bool
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o optionalString) Ptr() *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}
