package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestRequestIDGenerated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w, seen := serve(t, req)

	echoed := w.Header().Get(Header)
	require.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen)

	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestIDPassedThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(Header, "upstream-id-42")
	w, seen := serve(t, req)

	assert.Equal(t, "upstream-id-42", w.Header().Get(Header))
	assert.Equal(t, "upstream-id-42", seen)
}
