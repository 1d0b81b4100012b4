package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campusworks/records-api/internal/models"
)

func performWithIdentity(t *testing.T, identity *models.UserInfo, param gin.Param, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		c.Set(ContextUserKey, identity)
	}
	if param.Key != "" {
		c.Params = gin.Params{param}
	}
	handler(c)
	return w
}

func TestRequireRolesAllows(t *testing.T) {
	identity := &models.UserInfo{UserID: 1, Role: models.RoleAdmin}
	w := performWithIdentity(t, identity, gin.Param{}, RequireRoles(models.RoleAdmin, models.RoleTeacher))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesForbids(t *testing.T) {
	identity := &models.UserInfo{UserID: 2, Role: models.RoleStudent}
	w := performWithIdentity(t, identity, gin.Param{}, StaffOnly())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesUnauthenticated(t *testing.T) {
	w := performWithIdentity(t, nil, gin.Param{}, AdminOnly())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelfOrStaffAllowsStaff(t *testing.T) {
	identity := &models.UserInfo{UserID: 1, Role: models.RoleTeacher}
	w := performWithIdentity(t, identity, gin.Param{Key: "id", Value: "8"}, SelfOrStaff("id"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSelfOrStaffAllowsOwnRecord(t *testing.T) {
	related := int64(7)
	identity := &models.UserInfo{UserID: 2, Role: models.RoleStudent, RelatedID: &related}
	w := performWithIdentity(t, identity, gin.Param{Key: "id", Value: "7"}, SelfOrStaff("id"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSelfOrStaffForbidsOtherRecord(t *testing.T) {
	related := int64(7)
	identity := &models.UserInfo{UserID: 2, Role: models.RoleStudent, RelatedID: &related}
	w := performWithIdentity(t, identity, gin.Param{Key: "id", Value: "8"}, SelfOrStaff("id"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSelfOrStaffForbidsUnlinkedStudent(t *testing.T) {
	identity := &models.UserInfo{UserID: 2, Role: models.RoleStudent}
	w := performWithIdentity(t, identity, gin.Param{Key: "id", Value: "7"}, SelfOrStaff("id"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
