package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

func TestHealth_Check(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		pinger := mocks.NewPinger(t)
		pinger.On("Ping", mock.Anything).Return(nil).Once()

		rec := httptest.NewRecorder()
		NewHealth(pinger, testutil.MakeNoopLogger()).Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store down", func(t *testing.T) {
		pinger := mocks.NewPinger(t)
		pinger.On("Ping", mock.Anything).Return(assert.AnError).Once()

		rec := httptest.NewRecorder()
		NewHealth(pinger, testutil.MakeNoopLogger()).Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("no pinger", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealth(nil, testutil.MakeNoopLogger()).Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOptionalString(t *testing.T) {
	t.Parallel()

	var req struct {
		A optionalString `json:"a"`
		B optionalString `json:"b"`
		C optionalString `json:"c"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":null}`), &req))

	assert.Equal(t, "x", *req.A.Ptr())
	assert.Equal(t, "", *req.B.Ptr())
	assert.Nil(t, req.C.Ptr())
}
