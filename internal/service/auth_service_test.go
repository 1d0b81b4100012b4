package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/session"
)

type mockUserRepo struct {
	users     map[string]models.User
	passwords map[int64]string
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.passwords == nil {
		m.passwords = make(map[int64]string)
	}
	m.passwords[id] = passwordHash
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	related := int64(7)
	repo := &mockUserRepo{users: map[string]models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin, Active: true},
		"alice": {ID: 2, Username: "alice", PasswordHash: string(hash), Role: models.RoleStudent, RelatedID: &related, Active: true},
		"gone":  {ID: 3, Username: "gone", PasswordHash: string(hash), Role: models.RoleTeacher, Active: false},
	}}
	svc := NewAuthService(repo, session.NewMemoryStore(time.Minute), validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "test_secret",
		SessionTTL:  time.Minute,
	})
	return svc, repo
}

func TestAuthServiceLoginAndResolve(t *testing.T) {
	svc, _ := newAuthFixture(t)

	result, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	require.NotEmpty(t, token)

	identity, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), identity.UserID)
	require.NotNil(t, identity.RelatedID)
	assert.Equal(t, int64(7), *identity.RelatedID)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Username: "gone", Password: "secret123"})
	require.Error(t, err)
	// Inactive accounts are indistinguishable from bad credentials.
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutEndsSession(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, token, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutToleratesGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	require.NoError(t, svc.Logout(context.Background(), "not-a-token"))
}

func TestAuthServiceResolveRejectsForgedToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	other := NewAuthService(&mockUserRepo{}, session.NewMemoryStore(time.Minute), validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "different_secret",
		SessionTTL:  time.Minute,
	})
	forged, err := other.signSessionToken("some-session")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), forged)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), 2, models.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "brandnew1",
	})
	require.NoError(t, err)

	hash, ok := repo.passwords[2]
	require.True(t, ok)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("brandnew1")))
}

func TestAuthServiceChangePasswordWrongOld(t *testing.T) {
	svc, _ := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), 2, models.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "brandnew1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
