package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/internal/service"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/response"
)

// CollegeHandler exposes college endpoints.
type CollegeHandler struct {
	colleges *service.CollegeService
}

// NewCollegeHandler constructs CollegeHandler.
func NewCollegeHandler(colleges *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Param search query string false "Search by name or code"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /student/college [get]
func (h *CollegeHandler) List(c *gin.Context) {
	var filter models.CollegeFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.PageSize = pageParams(c)

	colleges, pagination, err := h.colleges.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, pagination)
}

// Get godoc
// @Summary Get college detail
// @Tags Colleges
// @Produce json
// @Param id path int true "College ID"
// @Success 200 {object} response.Envelope
// @Router /student/college/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	college, err := h.colleges.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Router /student/college [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.colleges.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, college)
}

// Update godoc
// @Summary Update college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param id path int true "College ID"
// @Param payload body service.CollegeRequest true "College payload"
// @Success 200 {object} response.Envelope
// @Router /student/college/{id} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.colleges.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Delete godoc
// @Summary Delete college
// @Tags Colleges
// @Produce json
// @Param id path int true "College ID"
// @Success 204
// @Router /student/college/{id} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.colleges.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
