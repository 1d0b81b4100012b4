package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/internal/service"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated identity.
const ContextUserKey = "currentUser"

// Session protects routes by requiring a valid session cookie. The cookie
// carries a signed token holding only the session ID; the identity is
// resolved from the server-side store on every request.
func Session(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		identity, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// OptionalSession attaches the identity when a valid cookie is present but
// does not block.
func OptionalSession(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		identity, err := authService.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// Identity extracts the authenticated user from the gin context.
func Identity(c *gin.Context) (*models.UserInfo, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.UserInfo)
	return identity, ok
}
