// Package requestid tags each request with a correlation ID so the log
// lines of a single request can be tied together.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the wire name of the correlation ID.
const Header = "X-Request-ID"

const ctxKey = "request_id"

// Middleware reuses the inbound X-Request-ID when the caller supplies one
// and mints a fresh UUID otherwise. The ID is echoed on the response so
// clients can quote it in bug reports.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// Value returns the ID assigned to the current request, or an empty
// string outside the middleware.
func Value(c *gin.Context) string {
	return c.GetString(ctxKey)
}
