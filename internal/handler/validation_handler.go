package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"glosaguard/internal/domain"
	"glosaguard/internal/service"
	"glosaguard/internal/validator"
)

// ValidationHandler handles guide validation endpoints.
type ValidationHandler struct {
	validationService service.ValidationService
	maxXMLBytes       int64
}

// NewValidationHandler creates a new ValidationHandler. Request bodies larger
// than maxXMLBytes are rejected.
func NewValidationHandler(validationService service.ValidationService, maxXMLBytes int64) *ValidationHandler {
	return &ValidationHandler{validationService: validationService, maxXMLBytes: maxXMLBytes}
}

// Check handles POST /api/v1/validate
// @Summary Validate a guide without storing it
// @Description Parse a raw TISS XML guide and return its findings, risk score and derived status.
// @Tags validation
// @Accept xml
// @Produce json
// @Param document body string true "TISS guide XML"
// @Success 200 {object} Response{data=validator.CheckResult} "Validation outcome"
// @Failure 400 {object} ErrorResponseBody "Empty body"
// @Failure 413 {object} ErrorResponseBody "Document too large"
// @Router /validate [post]
func (h *ValidationHandler) Check(c *gin.Context) {
	data, err := h.readDocument(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, h.validationService.Check(data))
}

// Rules handles GET /api/v1/rules
// @Summary List validation rules
// @Tags validation
// @Produce json
// @Success 200 {object} Response{data=RulesResponse} "Rule catalogue"
// @Router /rules [get]
func (h *ValidationHandler) Rules(c *gin.Context) {
	rules := h.validationService.Rules()
	out := RulesResponse{
		Rules:          make([]RuleInfo, 0, len(rules)),
		EditableFields: validator.EditableFields(),
	}
	for _, r := range rules {
		out.Rules = append(out.Rules, RuleInfo{Key: r.Key(), Name: r.Name(), Category: r.Category(), Field: r.Field()})
	}
	RespondOK(c, out)
}

// Validate handles POST /api/v1/submissions/:id/validate
// @Summary Validate a submission's guide
// @Description Parse the XML, replace stored findings and guide, and recompute risk and status.
// @Tags validation
// @Accept xml
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Param document body string true "TISS guide XML"
// @Success 200 {object} Response{data=validator.ValidationResponse} "Validation results"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or empty body"
// @Failure 404 {object} ErrorResponseBody "Submission not found"
// @Failure 413 {object} ErrorResponseBody "Document too large"
// @Router /submissions/{id}/validate [post]
func (h *ValidationHandler) Validate(c *gin.Context) {
	id, ok := parseSubmissionID(c)
	if !ok {
		return
	}
	data, err := h.readDocument(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	resp, err := h.validationService.ValidateSubmission(c.Request.Context(), id, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// GetValidation handles GET /api/v1/submissions/:id/validation
// @Summary Get stored validation results
// @Tags validation
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Success 200 {object} Response{data=validator.ValidationResponse} "Validation results"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Submission not found"
// @Router /submissions/{id}/validation [get]
func (h *ValidationHandler) GetValidation(c *gin.Context) {
	id, ok := parseSubmissionID(c)
	if !ok {
		return
	}

	resp, err := h.validationService.GetValidation(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// EditGuide handles PATCH /api/v1/submissions/:id/guide
// @Summary Correct guide fields
// @Description Apply manual corrections and revalidate only the changed fields.
// @Tags validation
// @Accept json
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Param request body EditGuideRequest true "Field path to new value"
// @Success 200 {object} Response{data=validator.ValidationResponse} "Updated validation results"
// @Failure 400 {object} ErrorResponseBody "Invalid ID, body or field"
// @Failure 404 {object} ErrorResponseBody "Submission or guide not found"
// @Router /submissions/{id}/guide [patch]
func (h *ValidationHandler) EditGuide(c *gin.Context) {
	id, ok := parseSubmissionID(c)
	if !ok {
		return
	}

	var patch EditGuideRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be an object of field paths to string values")
		return
	}

	resp, err := h.validationService.EditGuide(c.Request.Context(), id, patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, resp)
}

// readDocument reads the raw request body, bounded by maxXMLBytes.
func (h *ValidationHandler) readDocument(c *gin.Context) ([]byte, error) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxXMLBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrDocumentTooLarge
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	return data, nil
}
