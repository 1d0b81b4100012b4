package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/response"
)

// RequireRoles allows only callers whose role is in the given set.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly restricts a route to administrators.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// StaffOnly restricts a route to administrators and teachers.
func StaffOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleTeacher)
}

// SelfOrStaff allows staff through unconditionally and students only when
// the named path parameter matches their linked student record.
func SelfOrStaff(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if identity.Role.Staff() {
			c.Next()
			return
		}
		target, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err == nil && identity.RelatedID != nil && *identity.RelatedID == target {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
