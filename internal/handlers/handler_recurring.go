package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks/internal/apperrors"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/finbooks/finbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests for recurring templates.
type recurringHandler struct {
	recurringService portssvc.RecurringService
}

// newRecurringHandler creates a new recurringHandler.
func newRecurringHandler(rs portssvc.RecurringService) *recurringHandler {
	return &recurringHandler{
		recurringService: rs,
	}
}

// registerRecurringRoutes registers routes related to recurring templates.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringService) {
	h := newRecurringHandler(recurringService)

	templates := rg.Group("/recurring-templates")
	{
		templates.POST("", h.createTemplate)
		templates.GET("", h.listTemplates)
		templates.PATCH("/:id", h.setTemplateActive)
	}
}

func (h *recurringHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	template, err := h.recurringService.CreateTemplate(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Template transaction must be a DRAFT"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Template already exists"})
		} else {
			logger.Error("Failed to create recurring template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(template))
}

func (h *recurringHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	templates, err := h.recurringService.ListTemplates(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list recurring templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponses(templates))
}

func (h *recurringHandler) setTemplateActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("id")

	var req dto.SetTemplateActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setTemplateActive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.recurringService.SetTemplateActive(c.Request.Context(), companyID, templateID, *req.Active, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		} else {
			logger.Error("Failed to toggle recurring template", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle template"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
