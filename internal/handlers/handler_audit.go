package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the read side of the audit trail.
type auditHandler struct {
	auditService portssvc.AuditService
}

// newAuditHandler creates a new auditHandler.
func newAuditHandler(as portssvc.AuditService) *auditHandler {
	return &auditHandler{
		auditService: as,
	}
}

// registerAuditRoutes registers routes related to the audit trail.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditService) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	{
		audit.GET("/:entityID", h.getEventsByEntity)
	}
}

func (h *auditHandler) getEventsByEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	events, err := h.auditService.GetEventsByEntity(c.Request.Context(), companyID, entityID)
	if err != nil {
		logger.Error("Failed to list audit events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
