package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// SessionVerifier resolves bearer tokens to users.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (model.User, error)
}

// Authenticate rejects requests without a valid session before they reach any handler.
type Authenticate struct {
	sessions       SessionVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(sessions SessionVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle verifies the Authorization header and stores the user ID in the request context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Error(w, model.NewUnauthorizedError("missing authorization token", nil))
			return
		}

		user, err := m.sessions.VerifySession(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authenticate: session rejected",
				"path", r.URL.Path, "error", err)
			response.Error(w, err)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
