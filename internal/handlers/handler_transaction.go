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

const defaultListLimit = 50

// transactionHandler handles HTTP requests for the transaction lifecycle.
type transactionHandler struct {
	postingService portssvc.PostingService
	ledgerService  portssvc.LedgerService
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ps portssvc.PostingService, ls portssvc.LedgerService) *transactionHandler {
	return &transactionHandler{
		postingService: ps,
		ledgerService:  ls,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, postingService portssvc.PostingService, ledgerService portssvc.LedgerService) {
	h := newTransactionHandler(postingService, ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createDraft)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateDraft)
		transactions.DELETE("/:id", h.deleteDraft)
		transactions.POST("/:id/post", h.postTransaction)
		transactions.POST("/:id/void", h.voidTransaction)
		transactions.GET("/:id/entries", h.getLedgerEntries)
	}
}

func (h *transactionHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	txn, err := h.postingService.CreateDraft(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			// Offset document or account reference does not exist
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create draft", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		}
		return
	}

	logger.Info("Draft created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}

	txns, nextToken, err := h.postingService.ListTransactions(c.Request.Context(), companyID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	txn, err := h.postingService.GetTransactionByID(c.Request.Context(), companyID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	txn, err := h.postingService.UpdateDraft(c.Request.Context(), companyID, transactionID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only DRAFT transactions can be updated"})
		} else {
			logger.Error("Failed to update draft", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update draft"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) deleteDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.postingService.DeleteDraft(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Only DRAFT transactions can be deleted"})
		} else {
			logger.Error("Failed to delete draft", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	txn, err := h.postingService.Post(c.Request.Context(), companyID, transactionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": "Only DRAFT transactions can be posted"})
		case errors.Is(err, apperrors.ErrUnbalancedTransaction),
			errors.Is(err, apperrors.ErrEmptyTransaction),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExceedsBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for voidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	voided, err := h.postingService.Void(c.Request.Context(), companyID, transactionID, req.Reason, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": "Only POSTED transactions can be voided"})
		case errors.Is(err, apperrors.ErrHasAllocations):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction has active allocations, remove them first"})
		default:
			logger.Error("Failed to void transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void transaction"})
		}
		return
	}

	reversingID := ""
	if voided.ReversingTransactionID != nil {
		reversingID = *voided.ReversingTransactionID
	}
	logger.Info("Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("reversing_transaction_id", reversingID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(voided))
}

func (h *transactionHandler) getLedgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	entries, err := h.ledgerService.GetEntriesByTransaction(c.Request.Context(), companyID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger entries"})
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}
