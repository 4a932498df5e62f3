package handler

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/service"
)

type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(service AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{service: service, contextManager: contextManager, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  optionalString `json:"name"`
	Email optionalString `json:"email"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type sessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      model.PublicUser `json:"user"`
}

func (h *Auth) public(u model.User) model.PublicUser {
	return u.Public(h.service.AvatarURL(u))
}

func (h *Auth) session(s model.Session) sessionResponse {
	return sessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: h.public(s.User)}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.service.Register(r.Context(), model.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, h.session(session))
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.session(session))
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	id, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.service.Me(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.public(user))
}

func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), id, model.ProfileUpdate{
		Name:  req.Name.Ptr(),
		Email: req.Email.Ptr(),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.public(user))
}

func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nil)
}

// UploadAvatar stores the raw request body as the caller's avatar.
func (h *Auth) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if r.ContentLength > service.MaxAvatarSize {
		response.Error(w, model.NewValidationError("avatar must be at most %d bytes", service.MaxAvatarSize))
		return
	}

	// Buffer the body so storage gets an exact size even for chunked uploads.
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, service.MaxAvatarSize))
	if err != nil {
		response.Error(w, model.NewValidationError("avatar must be at most %d bytes", service.MaxAvatarSize))
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = http.DetectContentType(data)
	}

	user, err := h.service.UploadAvatar(r.Context(), id, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		h.logger.Warn("Auth handler: avatar upload failed", "user_id", id, "error", err)
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.public(user))
}

// GetAvatar streams a user's avatar. Avatars are public so they can back <img> tags.
func (h *Auth) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user")
	if err != nil {
		response.Error(w, err)
		return
	}

	reader, err := h.service.GetAvatar(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer reader.Close()

	br := bufio.NewReader(reader)
	head, _ := br.Peek(512)

	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, br); err != nil {
		h.logger.Warn("Auth handler: failed to stream avatar", "user_id", id, "error", err)
	}
}
