package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/records-api/internal/middleware"
	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/internal/service"
	"github.com/campusworks/records-api/pkg/config"
	"github.com/campusworks/records-api/pkg/session"
)

type fakeUserRepo struct {
	users map[string]models.User
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin, Active: true},
	}}
	cookieCfg := config.SessionConfig{
		TokenSecret: "test_secret",
		TTL:         time.Minute,
		CookieName:  "campus_session",
	}
	authSvc := service.NewAuthService(repo, session.NewMemoryStore(time.Minute), validator.New(), zap.NewNop(), service.AuthConfig{
		TokenSecret: cookieCfg.TokenSecret,
		SessionTTL:  cookieCfg.TTL,
	})
	h := NewAuthHandler(authSvc, service.NewMetricsService(), cookieCfg)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/check_auth", middleware.OptionalSession(authSvc, cookieCfg.CookieName), h.CheckAuth)
	return r
}

func postLogin(t *testing.T, r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	r := newAuthRouter(t)

	w := postLogin(t, r, "admin", "secret123")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Success)
	assert.Equal(t, "admin", envelope.Data.User.Username)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "campus_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	w := postLogin(t, r, "admin", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandlerCheckAuthAnonymous(t *testing.T) {
	r := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/check_auth", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data models.AuthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Authenticated)
	assert.Nil(t, envelope.Data.User)
}

func TestAuthHandlerCheckAuthWithSession(t *testing.T) {
	r := newAuthRouter(t)

	login := postLogin(t, r, "admin", "secret123")
	require.Equal(t, http.StatusOK, login.Code)
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/check_auth", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data models.AuthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Authenticated)
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, models.RoleAdmin, envelope.Data.User.Role)
}

func TestAuthHandlerLogoutInvalidatesSession(t *testing.T) {
	r := newAuthRouter(t)

	login := postLogin(t, r, "admin", "secret123")
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	check := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/check_auth", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(check, req)

	var envelope struct {
		Data models.AuthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(check.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Authenticated)
}
