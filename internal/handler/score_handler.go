package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/records-api/internal/service"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/response"
)

// ScoreHandler exposes score endpoints and the transcript download.
type ScoreHandler struct {
	scores      *service.ScoreService
	transcripts *service.TranscriptService
}

// NewScoreHandler constructs ScoreHandler.
func NewScoreHandler(scores *service.ScoreService, transcripts *service.TranscriptService) *ScoreHandler {
	return &ScoreHandler{scores: scores, transcripts: transcripts}
}

// ListByStudent godoc
// @Summary List a student's scores
// @Tags Scores
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /score/student/{student_id} [get]
func (h *ScoreHandler) ListByStudent(c *gin.Context) {
	studentID, err := pathID(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	scores, err := h.scores.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, scores)
}

// Export godoc
// @Summary Download a student's transcript
// @Tags Scores
// @Produce text/csv,application/pdf
// @Param student_id path int true "Student ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /score/student/{student_id}/export [get]
func (h *ScoreHandler) Export(c *gin.Context) {
	studentID, err := pathID(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.TranscriptFormat(c.DefaultQuery("format", "csv"))
	transcript, err := h.transcripts.Export(c.Request.Context(), studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+transcript.FileName+`"`)
	c.Data(http.StatusOK, transcript.ContentType, transcript.Content)
}

// Create godoc
// @Summary Enroll a student in an offering
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body service.ScoreCreateRequest true "Score payload"
// @Success 201 {object} response.Envelope
// @Router /score [post]
func (h *ScoreHandler) Create(c *gin.Context) {
	var req service.ScoreCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.scores.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, score)
}

// Update godoc
// @Summary Update a score record
// @Tags Scores
// @Accept json
// @Produce json
// @Param sc_id path int true "Score record ID"
// @Param payload body service.ScoreUpdateRequest true "Score payload"
// @Success 200 {object} response.Envelope
// @Router /score/{sc_id} [put]
func (h *ScoreHandler) Update(c *gin.Context) {
	id, err := pathID(c, "sc_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ScoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.scores.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, score, nil)
}

// Delete godoc
// @Summary Delete a score record
// @Tags Scores
// @Produce json
// @Param sc_id path int true "Score record ID"
// @Success 204
// @Router /score/{sc_id} [delete]
func (h *ScoreHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "sc_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.scores.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
