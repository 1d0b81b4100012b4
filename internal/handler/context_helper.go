package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/middleware"
	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

func identityFromContext(c *gin.Context) *models.UserInfo {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*models.UserInfo)
	if !ok {
		return nil
	}
	return identity
}

func pathID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+param)
	}
	return id, nil
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, size
}
