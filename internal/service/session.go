package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Session issues bearer tokens and resolves them back to users.
// It keeps no state beyond what the token manager signs.
type Session struct {
	manager   model.TokenManager
	userStore model.UserStore
	logger    *logger.Logger
}

func NewSession(manager model.TokenManager, userStore model.UserStore, logger *logger.Logger) *Session {
	return &Session{manager: manager, userStore: userStore, logger: logger}
}

func (s *Session) Issue(_ context.Context, user model.User) (model.Session, error) {
	token, expiresAt, err := s.manager.GenerateAccessToken(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return model.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// VerifySession returns the user bound to token. Missing, malformed, expired
// and foreign-signed tokens all fail with an unauthorized error.
func (s *Session) VerifySession(ctx context.Context, token string) (model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.User{}, model.NewUnauthorizedError("missing authorization token", nil)
	}

	userID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("Session service: token rejected", "error", err)
		return model.User{}, model.NewUnauthorizedError("invalid or expired authorization token", err)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NewUnauthorizedError("session user no longer exists", nil)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get session user: %w", err)
	}

	return user, nil
}
