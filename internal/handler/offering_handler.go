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

// OfferingHandler exposes course offering endpoints.
type OfferingHandler struct {
	offerings *service.OfferingService
}

// NewOfferingHandler constructs OfferingHandler.
func NewOfferingHandler(offerings *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offerings: offerings}
}

// List godoc
// @Summary List course offerings
// @Description Staff see every offering; students only offerings they are enrolled in
// @Tags Offerings
// @Produce json
// @Param search query string false "Search by course or teacher name"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /offering [get]
func (h *OfferingHandler) List(c *gin.Context) {
	var filter models.OfferingFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.PageSize = pageParams(c)

	offerings, pagination, err := h.offerings.List(c.Request.Context(), filter, identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offerings, pagination)
}

// Get godoc
// @Summary Get offering detail
// @Tags Offerings
// @Produce json
// @Param id path int true "Offering ID"
// @Success 200 {object} response.Envelope
// @Router /offering/{id} [get]
func (h *OfferingHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	offering, err := h.offerings.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// Create godoc
// @Summary Schedule a course offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param payload body service.OfferingRequest true "Offering payload"
// @Success 201 {object} response.Envelope
// @Router /offering [post]
func (h *OfferingHandler) Create(c *gin.Context) {
	var req service.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.offerings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offering)
}

// Update godoc
// @Summary Update offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param id path int true "Offering ID"
// @Param payload body service.OfferingRequest true "Offering payload"
// @Success 200 {object} response.Envelope
// @Router /offering/{id} [put]
func (h *OfferingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.offerings.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// Delete godoc
// @Summary Delete offering
// @Tags Offerings
// @Produce json
// @Param id path int true "Offering ID"
// @Success 204
// @Router /offering/{id} [delete]
func (h *OfferingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.offerings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
