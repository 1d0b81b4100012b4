package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/session"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AuthConfig defines configuration for the session-token flow.
type AuthConfig struct {
	TokenSecret string
	SessionTTL  time.Duration
}

// AuthService owns login, logout, and session resolution. The session
// itself lives server-side; clients only hold a signed token carrying the
// session ID.
type AuthService struct {
	repo      authUserRepository
	sessions  session.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions session.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, config: config}
}

// Login verifies credentials against the stored one-way hash, creates a
// server-side session, and returns the identity plus a signed cookie token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password must not be empty")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	identity := session.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		RelatedID: user.RelatedID,
	}
	sessionID, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	token, err := s.signSessionToken(sessionID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))

	result := &models.LoginResult{
		Success: true,
		User: models.UserInfo{
			UserID:    user.ID,
			Username:  user.Username,
			Role:      user.Role,
			RelatedID: user.RelatedID,
		},
	}
	return result, token, nil
}

// Logout clears the caller's server-side session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.parseSessionToken(token)
	if err != nil {
		// A bad or expired token still counts as logged out.
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// Resolve validates a cookie token and looks up the live session identity.
// It is a pure lookup with no side effects.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.UserInfo, error) {
	sessionID, err := s.parseSessionToken(token)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	identity, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return &models.UserInfo{
		UserID:    identity.UserID,
		Username:  identity.Username,
		Role:      models.Role(identity.Role),
		RelatedID: identity.RelatedID,
	}, nil
}

// ChangePassword verifies the old password and stores a fresh hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change password payload")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrForbidden, "old password does not match")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	return nil
}

func (s *AuthService) signSessionToken(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}

func (s *AuthService) parseSessionToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session claims")
	}
	return claims.SessionID, nil
}
