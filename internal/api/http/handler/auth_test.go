package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

func authRouter(h *Auth) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/user/register", h.Register)
	r.Post("/api/user/login", h.Login)
	r.Get("/api/user/me", h.Me)
	r.Put("/api/user/profile", h.UpdateProfile)
	r.Put("/api/user/password", h.ChangePassword)
	r.Put("/api/user/avatar", h.UploadAvatar)
	r.Get("/api/users/{id}/avatar", h.GetAvatar)
	return r
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Name: "Ana Maria", Email: "ana@x.com", PasswordHash: []byte("secret-hash")}
	expires := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	svc := mocks.NewAuthService(t)
	svc.On("Register", mock.Anything, model.RegisterParams{Name: "Ana Maria", Email: "ana@x.com", Password: "password1"}).
		Return(model.Session{Token: "tok", ExpiresAt: expires, User: user}, nil).Once()
	svc.On("AvatarURL", user).Return("").Once()

	rec := httptest.NewRecorder()
	body := `{"name":"Ana Maria","email":"ana@x.com","password":"password1"}`
	authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.NotContains(t, rec.Body.String(), "password")

	var data struct {
		Token string           `json:"token"`
		User  model.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "tok", data.Token)
	assert.Equal(t, user.ID.String(), data.User.ID)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ana+Maria&background=random", data.User.Avatar)
}

func TestAuth_Register_Duplicate(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Register", mock.Anything, mock.Anything).Return(model.Session{}, model.ErrDuplicateEmail).Once()

	rec := httptest.NewRecorder()
	authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"email":"a@x.com"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_email", decodeEnvelope(t, rec).Error.Kind)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Login", mock.Anything, "a@x.com", "wrong").Return(model.Session{}, model.ErrInvalidCredentials).Once()
	svc.On("Login", mock.Anything, "nope@x.com", "any").Return(model.Session{}, model.ErrInvalidCredentials).Once()

	router := authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger()))

	var bodies []string
	for _, body := range []string{`{"email":"a@x.com","password":"wrong"}`, `{"email":"nope@x.com","password":"any"}`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestAuth_MeAndProfile(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Name: "Ana", Email: "ana@x.com", AvatarKey: "avatars/x"}
	svc := mocks.NewAuthService(t)
	svc.On("Me", mock.Anything, user.ID).Return(user, nil).Once()
	svc.On("AvatarURL", mock.Anything).Return("/api/users/" + user.ID.String() + "/avatar")
	svc.On("UpdateProfile", mock.Anything, user.ID, mock.MatchedBy(func(u model.ProfileUpdate) bool {
		return u.Name != nil && *u.Name == "Bob" && u.Email == nil
	})).Return(user, nil).Once()

	router := authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/user/me", "", user.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.PublicUser
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, "/api/users/"+user.ID.String()+"/avatar", got.Avatar)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/user/profile", `{"name":"Bob"}`, user.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_ChangePassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := mocks.NewAuthService(t)
	svc.On("ChangePassword", mock.Anything, userID, "old-password", "new-password").Return(nil).Once()

	rec := httptest.NewRecorder()
	authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodPut, "/api/user/password", `{"currentPassword":"old-password","newPassword":"new-password"}`, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestAuth_UploadAvatar(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Name: "Ana"}
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	svc := mocks.NewAuthService(t)
	svc.On("UploadAvatar", mock.Anything, user.ID, mock.Anything, int64(len(png)), "image/png").Return(user, nil).Once()
	svc.On("AvatarURL", user).Return("").Once()

	req := authedRequest(http.MethodPut, "/api/user/avatar", "", user.ID)
	req.Body = io.NopCloser(bytes.NewReader(png))
	req.Header.Set("Content-Type", "application/octet-stream")

	rec := httptest.NewRecorder()
	authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_GetAvatar(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	svc := mocks.NewAuthService(t)
	svc.On("GetAvatar", mock.Anything, userID).Return(io.NopCloser(bytes.NewReader(png)), nil).Once()
	svc.On("GetAvatar", mock.Anything, mock.Anything).Return(nil, model.ErrNotFound).Once()

	router := authRouter(NewAuth(svc, apicontext.NewManager(), testutil.MakeNoopLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/"+userID.String()+"/avatar", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.NewString()+"/avatar", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
