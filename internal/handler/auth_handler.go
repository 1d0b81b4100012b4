package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/internal/service"
	"github.com/campusworks/records-api/pkg/config"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/response"
)

// AuthHandler wires the session endpoints to the auth service. The session
// token travels in an HTTP-only cookie, never in the response body.
type AuthHandler struct {
	service *service.AuthService
	metrics *service.MetricsService
	cookie  config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, metrics *service.MetricsService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, metrics: metrics, cookie: cookie}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token, maxAge, "/", "", h.cookie.CookieSecure, true)
}

// Login godoc
// @Summary Authenticate user
// @Description Verify credentials and open a server-side session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	result, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.metrics.RecordLogin(false)
		response.Error(c, err)
		return
	}
	h.metrics.RecordLogin(true)
	h.metrics.SessionOpened()

	h.setSessionCookie(c, token, int(h.cookie.TTL.Seconds()))
	response.OK(c, result)
}

// Logout godoc
// @Summary End the current session
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.CookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.SessionClosed()

	h.setSessionCookie(c, "", -1)
	response.OK(c, gin.H{"success": true})
}

// CheckAuth godoc
// @Summary Report authentication status
// @Description Always 200; the body says whether the session is valid
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/check_auth [get]
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	identity := identityFromContext(c)
	status := models.AuthStatus{
		Authenticated: identity != nil,
		User:          identity,
	}
	response.OK(c, status)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/change_password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid password payload"))
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), identity.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
