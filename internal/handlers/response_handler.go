package handlers

import (
	"fmt"
	"net/http"

	"github.com/formcraft/formbuilder-service/internal/repositories"
	"github.com/formcraft/formbuilder-service/internal/services"
	"github.com/formcraft/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(responseService services.ResponseService, exportService services.ExportService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse validates and stores a submission against a published form
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.responseService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Response submitted successfully",
		"response": response,
	})
}

// GetResponse retrieves one stored submission
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListResponses lists all submissions of a form, newest first
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID := h.parseIDParam(c, "formId")
	if formID == 0 {
		return
	}

	filters := repositories.ResponseFilters{
		Limit:  parseIntQuery(c, "limit", 0),
		Offset: parseIntQuery(c, "offset", 0),
	}

	responses, err := h.responseService.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": responses,
		"total":     len(responses),
	})
}

// ScoreResponse runs the scoring engine against one submission
func (h *ResponseHandler) ScoreResponse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	score, err := h.responseService.Score(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// GetFormStats aggregates all of a form's responses
func (h *ResponseHandler) GetFormStats(c *gin.Context) {
	formID := h.parseIDParam(c, "formId")
	if formID == 0 {
		return
	}

	stats, err := h.responseService.Stats(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportResponses streams the form's responses as CSV or XLSX
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID := h.parseIDParam(c, "formId")
	if formID == 0 {
		return
	}

	format := c.DefaultQuery("format", "csv")

	var (
		data        []byte
		contentType string
		filename    string
		err         error
	)
	switch format {
	case "csv":
		data, err = h.exportService.ExportResponsesCSV(c.Request.Context(), formID)
		contentType = "text/csv"
		filename = fmt.Sprintf("form_%d_responses.csv", formID)
	case "xlsx":
		data, err = h.exportService.ExportResponsesExcel(c.Request.Context(), formID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("form_%d_responses.xlsx", formID)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: "format must be csv or xlsx",
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
