package handler

import (
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

type Health struct {
	pinger Pinger
	logger *logger.Logger
}

// NewHealth creates the health handler. A nil pinger always reports healthy.
func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Warn("Health: store ping failed", "error", err)
			response.Error(w, model.NewStoreUnavailable(err))
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
