package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/google/uuid"
)

type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryFacade
	txnRepo       portsrepo.TransactionReader
}

// NewRecurringService creates the recurring template directory service.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.RecurringService {
	return &recurringService{
		recurringRepo: recurringRepo,
		txnRepo:       txnRepo,
	}
}

func (s *recurringService) CreateTemplate(ctx context.Context, companyID string, req dto.CreateTemplateRequest, creatorUserID string) (*domain.RecurringTemplate, error) {
	source, err := s.txnRepo.FindTransactionByID(ctx, companyID, req.TemplateTransactionID)
	if err != nil {
		return nil, err
	}
	if source.Status != domain.StatusDraft {
		return nil, fmt.Errorf("template transaction must stay a draft: %w", apperrors.ErrInvalidState)
	}
	if source.Type.IsDocumentType() || source.Type.IsNoteType() {
		return nil, fmt.Errorf("recurring templates support journal and cash types only: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	template := domain.RecurringTemplate{
		TemplateID:            uuid.NewString(),
		CompanyID:             companyID,
		Name:                  req.Name,
		TemplateTransactionID: req.TemplateTransactionID,
		IntervalDays:          req.IntervalDays,
		NextRunDate:           req.NextRunDate,
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.recurringRepo.SaveTemplate(ctx, &template); err != nil {
		s.LogError(ctx, err, "Failed to save recurring template", "name", req.Name)
		return nil, err
	}

	s.LogInfo(ctx, "Recurring template created", "template_id", template.TemplateID)
	return &template, nil
}

func (s *recurringService) ListTemplates(ctx context.Context, companyID string) ([]domain.RecurringTemplate, error) {
	return s.recurringRepo.FindTemplatesByCompany(ctx, companyID)
}

func (s *recurringService) SetTemplateActive(ctx context.Context, companyID string, templateID string, active bool, updaterUserID string) error {
	if _, err := s.recurringRepo.FindTemplateByID(ctx, companyID, templateID); err != nil {
		return err
	}
	return s.recurringRepo.SetTemplateActive(ctx, companyID, templateID, active, updaterUserID)
}
