package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserInfo describes the authenticated user in responses. Password hashes
// never serialize.
type UserInfo struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	RelatedID *int64 `json:"related_id,omitempty"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

// AuthStatus is the check_auth response payload.
type AuthStatus struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
}

// ChangePasswordRequest payload for updating the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// SessionClaims is the signed cookie token payload. Only the session ID
// travels to the client; the identity stays in the server-side store.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
