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

// allocationHandler handles HTTP requests for allocations and open documents.
type allocationHandler struct {
	allocationService portssvc.AllocationService
}

// newAllocationHandler creates a new allocationHandler.
func newAllocationHandler(as portssvc.AllocationService) *allocationHandler {
	return &allocationHandler{
		allocationService: as,
	}
}

// registerAllocationRoutes registers routes related to allocations and documents.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationService) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.allocate)
		allocations.GET("", h.listAllocations)
		allocations.DELETE("/:id", h.removeAllocation)
	}

	documents := rg.Group("/documents")
	{
		documents.GET("", h.listOpenDocuments)
		documents.GET("/:id", h.getDocument)
		documents.GET("/:id/allocations", h.getDocumentAllocations)
	}
}

func (h *allocationHandler) allocate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for allocate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	alloc, err := h.allocationService.Allocate(c.Request.Context(), companyID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOverAllocation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyAllocated):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to allocate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate"})
		}
		return
	}

	logger.Info("Allocation created",
		slog.String("allocation_id", alloc.AllocationID),
		slog.String("document_id", alloc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(alloc))
}

// listAllocations lists allocations for a cash transaction passed as a query
// parameter. Document-scoped listing lives under /documents/:id/allocations.
func (h *allocationHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	cashTransactionID := c.Query("cashTransactionID")
	if cashTransactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cashTransactionID query parameter is required"})
		return
	}

	allocs, err := h.allocationService.GetAllocationsByCashTransaction(c.Request.Context(), companyID, cashTransactionID)
	if err != nil {
		logger.Error("Failed to list allocations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocs))
}

func (h *allocationHandler) removeAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	allocationID := c.Param("id")

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.allocationService.RemoveAllocation(c.Request.Context(), companyID, allocationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to remove allocation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove allocation"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *allocationHandler) listOpenDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	kind := domain.DocumentKind(c.Query("kind"))
	if kind != domain.KindSalesInvoice && kind != domain.KindSupplierBill {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind query parameter must be SALES_INVOICE or SUPPLIER_BILL"})
		return
	}

	docs, err := h.allocationService.ListOpenDocuments(c.Request.Context(), companyID, kind)
	if err != nil {
		logger.Error("Failed to list open documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list open documents"})
		return
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = dto.ToDocumentResponse(&docs[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *allocationHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	doc, err := h.allocationService.GetDocumentByID(c.Request.Context(), companyID, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

func (h *allocationHandler) getDocumentAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	allocs, err := h.allocationService.GetAllocationsByDocument(c.Request.Context(), companyID, documentID)
	if err != nil {
		logger.Error("Failed to list document allocations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocs))
}
