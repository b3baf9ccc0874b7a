package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// RecurringService manages recurring templates. Execution belongs to the
// scheduler; this service only maintains the template directory.
type RecurringService interface {
	CreateTemplate(ctx context.Context, companyID string, req dto.CreateTemplateRequest, creatorUserID string) (*domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context, companyID string) ([]domain.RecurringTemplate, error)
	SetTemplateActive(ctx context.Context, companyID string, templateID string, active bool, updaterUserID string) error
}
