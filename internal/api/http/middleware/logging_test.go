package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		wantLines  int
		wantStatus float64
	}{
		{name: "implicit ok", status: 0, wantLines: 1, wantStatus: 200},
		{name: "not found", status: http.StatusNotFound, wantLines: 1, wantStatus: 404},
		{name: "server error", status: http.StatusInternalServerError, wantLines: 2, wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			lg := logger.NewWithWriter(&buf, 0, "json")

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte("ok"))
			})

			rec := httptest.NewRecorder()
			NewLogging(lg).Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, tt.wantLines)

			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
			assert.Equal(t, "HTTP request completed", entry["msg"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/api/tasks", entry["path"])
			assert.Equal(t, tt.wantStatus, entry["status"])
		})
	}
}
