package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/finbooks/finbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankFeedHandler handles HTTP requests for bank feed reconciliation.
type bankFeedHandler struct {
	reconciliationService portssvc.ReconciliationService
}

// newBankFeedHandler creates a new bankFeedHandler.
func newBankFeedHandler(rs portssvc.ReconciliationService) *bankFeedHandler {
	return &bankFeedHandler{
		reconciliationService: rs,
	}
}

// registerBankFeedRoutes registers routes related to bank feed reconciliation.
func registerBankFeedRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationService) {
	h := newBankFeedHandler(reconciliationService)

	bankfeeds := rg.Group("/bankfeeds")
	{
		bankfeeds.POST("/import", h.importFeed)
		bankfeeds.GET("/items", h.listItems)
		bankfeeds.GET("/unmatched-summary", h.summarizeUnmatched)
		bankfeeds.POST("/items/:id/match", h.matchItem)
		bankfeeds.POST("/items/:id/ignore", h.ignoreItem)
		bankfeeds.POST("/automatch", h.autoMatch)
		bankfeeds.POST("/rules", h.createRule)
		bankfeeds.GET("/rules", h.listRules)
		bankfeeds.PATCH("/rules/:id", h.setRuleEnabled)
	}
}

func (h *bankFeedHandler) importFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importFeed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	result, err := h.reconciliationService.ImportFeed(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to import bank feed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import bank feed"})
		}
		return
	}

	logger.Info("Bank feed imported",
		slog.String("batch_id", req.ImportBatchID),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, result)
}

func (h *bankFeedHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	bankAccountID := c.Query("bankAccountID")
	if bankAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bankAccountID query parameter is required"})
		return
	}

	status := domain.BankFeedItemStatus(c.DefaultQuery("status", string(domain.FeedNew)))
	switch status {
	case domain.FeedNew, domain.FeedMatched, domain.FeedIgnored:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be NEW, MATCHED or IGNORED"})
		return
	}

	items, err := h.reconciliationService.ListFeedItems(c.Request.Context(), companyID, bankAccountID, status)
	if err != nil {
		logger.Error("Failed to list feed items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feed items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedItemResponses(items))
}

func (h *bankFeedHandler) summarizeUnmatched(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.SummarizeUnmatched(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to summarize unmatched items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize unmatched items"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *bankFeedHandler) matchItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	var req dto.MatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for matchItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.reconciliationService.MatchItem(c.Request.Context(), companyID, itemID, req.TransactionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to match feed item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to match feed item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *bankFeedHandler) ignoreItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("id")

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.reconciliationService.IgnoreItem(c.Request.Context(), companyID, itemID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feed item not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only NEW feed items can be ignored"})
		} else {
			logger.Error("Failed to ignore feed item", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ignore feed item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *bankFeedHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	bankAccountID := c.Query("bankAccountID")
	if bankAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bankAccountID query parameter is required"})
		return
	}

	result, err := h.reconciliationService.AutoMatch(c.Request.Context(), companyID, bankAccountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Auto-match pass failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Auto-match pass failed"})
		}
		return
	}

	logger.Info("Auto-match pass completed",
		slog.Int("examined", result.Examined),
		slog.Int("matched", result.Matched))
	c.JSON(http.StatusOK, result)
}

func (h *bankFeedHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	rule, err := h.reconciliationService.CreateRule(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create rule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRuleResponse(rule))
}

func (h *bankFeedHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	rules, err := h.reconciliationService.ListRules(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRuleResponses(rules))
}

func (h *bankFeedHandler) setRuleEnabled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("id")

	var req dto.SetRuleEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setRuleEnabled", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.reconciliationService.SetRuleEnabled(c.Request.Context(), companyID, ruleID, *req.Enabled, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
		} else {
			logger.Error("Failed to toggle rule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle rule"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
