package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"glosaguard/internal/domain"
	"glosaguard/internal/port"
	"glosaguard/internal/service"
)

// SubmissionHandler handles submission (lote) endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Create handles POST /api/v1/submissions
// @Summary Create a submission
// @Description Register a new guide batch. It starts in needs_review until validated.
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body CreateSubmissionRequest true "Submission details"
// @Success 201 {object} Response{data=domain.Submission} "Submission created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "payer_code is required")
		return
	}

	sub, err := h.submissionService.Create(c.Request.Context(), &service.CreateSubmissionInput{
		PayerCode:   req.PayerCode,
		BatchNumber: req.BatchNumber,
		Origin:      req.Origin,
		Notes:       req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sub)
}

// List handles GET /api/v1/submissions
// @Summary List submissions
// @Tags submissions
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param status query string false "Filter by status"
// @Param payer_code query string false "Filter by payer code"
// @Success 200 {object} Response{data=[]domain.Submission,meta=PagMeta} "List of submissions"
// @Failure 400 {object} ErrorResponseBody "Invalid status filter"
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := port.SubmissionFilter{
		Status:    domain.SubmissionStatus(c.Query("status")),
		PayerCode: c.Query("payer_code"),
	}

	subs, total, err := h.submissionService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, subs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/submissions/:id
// @Summary Get submission by ID
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Success 200 {object} Response{data=domain.Submission} "Submission details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Submission not found"
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetByID(c *gin.Context) {
	id, ok := parseSubmissionID(c)
	if !ok {
		return
	}

	sub, err := h.submissionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sub)
}

// UpdateStatus handles PUT /api/v1/submissions/:id/status
// @Summary Change submission status
// @Description Manual lifecycle transition, e.g. to submitted, approved or denied.
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID (UUID)"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} Response{data=domain.Submission} "Updated submission"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or status"
// @Failure 404 {object} ErrorResponseBody "Submission not found"
// @Router /submissions/{id}/status [put]
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseSubmissionID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	sub, err := h.submissionService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sub)
}

// parseSubmissionID reads the :id path param. Returns false if it is not a
// UUID (error response already written).
func parseSubmissionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid submission ID")
		return uuid.Nil, false
	}
	return id, true
}
