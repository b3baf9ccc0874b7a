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

// reportingHandler handles HTTP requests for derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	ledgerService    portssvc.LedgerService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService, ls portssvc.LedgerService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		ledgerService:    ls,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, ledgerService portssvc.LedgerService) {
	h := newReportingHandler(reportingService, ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/aged-receivables", h.agedReceivables)
		reports.GET("/aged-payables", h.agedPayables)
		reports.GET("/cashflow", h.cashflowSummary)
		reports.GET("/bank-register", h.bankRegister)
		reports.GET("/ledger-entries", h.ledgerEntries)
	}
}

func (h *reportingHandler) bindParams(c *gin.Context) (dto.ReportParams, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, "", false
	}

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return params, "", false
	}
	return params, companyID, true
}

func (h *reportingHandler) respond(c *gin.Context, report any, err error) {
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to derive report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, params.AsOf, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, params.From, params.To, params.Department, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, params.AsOf, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) agedReceivables(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.AgedReceivables(c.Request.Context(), companyID, params.AsOf, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) agedPayables(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.AgedPayables(c.Request.Context(), companyID, params.AsOf, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) cashflowSummary(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	report, err := h.reportingService.CashflowSummary(c.Request.Context(), companyID, params.From, params.To, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

func (h *reportingHandler) bankRegister(c *gin.Context) {
	params, companyID, ok := h.bindParams(c)
	if !ok {
		return
	}
	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}
	report, err := h.reportingService.BankRegister(c.Request.Context(), companyID, accountID, params.From, params.To, params.MaxSecurityLevel)
	h.respond(c, report, err)
}

// ledgerEntries lists raw ledger entries for one account over a date range.
func (h *reportingHandler) ledgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.LedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.AccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}

	_, companyID, ok := callerIdentity(c, logger)
	if !ok {
		return
	}

	entries, err := h.ledgerService.GetEntriesByAccount(c.Request.Context(), companyID, params.AccountID, params.From, params.To)
	h.respond(c, entries, err)
}
