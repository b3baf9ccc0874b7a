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

// taxCodeHandler handles HTTP requests for the tax code directory.
type taxCodeHandler struct {
	taxCodeService portssvc.TaxCodeService
}

// newTaxCodeHandler creates a new taxCodeHandler.
func newTaxCodeHandler(ts portssvc.TaxCodeService) *taxCodeHandler {
	return &taxCodeHandler{
		taxCodeService: ts,
	}
}

// registerTaxCodeRoutes registers routes related to tax codes.
func registerTaxCodeRoutes(rg *gin.RouterGroup, taxCodeService portssvc.TaxCodeService) {
	h := newTaxCodeHandler(taxCodeService)

	taxcodes := rg.Group("/taxcodes")
	{
		taxcodes.POST("", h.createTaxCode)
		taxcodes.GET("", h.listTaxCodes)
		taxcodes.GET("/:code", h.getTaxCode)
		taxcodes.DELETE("/:code", h.deactivateTaxCode)
	}
}

func (h *taxCodeHandler) createTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTaxCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	taxCode, err := h.taxCodeService.CreateTaxCode(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tax code already exists"})
		} else {
			logger.Error("Failed to create tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax code"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaxCodeResponse(taxCode))
}

func (h *taxCodeHandler) getTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	taxCode, err := h.taxCodeService.GetTaxCodeByCode(c.Request.Context(), companyID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax code not found"})
		} else {
			logger.Error("Failed to get tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxCodeResponse(taxCode))
}

func (h *taxCodeHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	codes, err := h.taxCodeService.ListTaxCodes(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list tax codes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax codes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxCodeResponses(codes))
}

func (h *taxCodeHandler) deactivateTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	userID, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	err := h.taxCodeService.DeactivateTaxCode(c.Request.Context(), companyID, code, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax code not found"})
		} else {
			logger.Error("Failed to deactivate tax code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate tax code"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
