package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/middleware"
	"github.com/finbooks/finbooks/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Posting, services.Ledger)
	registerAllocationRoutes(v1, services.Allocation)
	registerBankFeedRoutes(v1, services.Reconciliation)
	registerReportingRoutes(v1, services.Reporting, services.Ledger)
	registerTaxCodeRoutes(v1, services.TaxCode)
	registerRecurringRoutes(v1, services.Recurring)
	registerAuditRoutes(v1, services.Audit)
}

// callerIdentity pulls the authenticated user and company from the request
// context. Writes a 401 and returns ok=false when either is missing.
func callerIdentity(c *gin.Context, logger *slog.Logger) (userID string, companyID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	companyID, ok = middleware.GetCompanyIDFromContext(c)
	if !ok {
		logger.Error("Company ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, companyID, true
}
