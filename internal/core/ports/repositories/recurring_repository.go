package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// RecurringReader defines read operations for recurring templates.
type RecurringReader interface {
	// FindTemplateByID retrieves a template by ID within a company.
	FindTemplateByID(ctx context.Context, companyID string, templateID string) (*domain.RecurringTemplate, error)
	// FindDueTemplates lists active templates whose next run date has passed.
	FindDueTemplates(ctx context.Context, now time.Time) ([]domain.RecurringTemplate, error)
	// FindTemplatesByCompany lists all templates for a company.
	FindTemplatesByCompany(ctx context.Context, companyID string) ([]domain.RecurringTemplate, error)
}

// RecurringWriter defines write operations for recurring templates.
type RecurringWriter interface {
	// SaveTemplate persists a new template.
	SaveTemplate(ctx context.Context, template *domain.RecurringTemplate) error
	// AdvanceTemplate moves NextRunDate forward after a successful run.
	AdvanceTemplate(ctx context.Context, companyID string, templateID string, nextRun time.Time) error
	// SetTemplateActive toggles a template.
	SetTemplateActive(ctx context.Context, companyID string, templateID string, active bool, updatedBy string) error
}

// RecurringRepositoryFacade combines reader and writer for recurring templates.
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
