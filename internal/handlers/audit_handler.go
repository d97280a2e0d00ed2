package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finwallet/internal/pagination"
	"finwallet/internal/services"
)

// AuditHandler exposes the caller's audit trail.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs returns the authenticated user's audit entries, newest first
// @Summary     List audit entries
// @Tags        audit
// @Produce     json
// @Security    BearerAuth
// @Param       resource_type query string false "wallet, category or transaction"
// @Param       resource_id   query string false "Resource ID"
// @Param       page          query int    false "Page number"
// @Param       page_size     query int    false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog] "Audit entries"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Failure     422 {object} ErrorResponse "Invalid filter"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query struct {
		services.AuditFilter
		pagination.PageRequest
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	result, err := h.auditService.ListUserEvents(c.Request.Context(), userID, query.AuditFilter, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
