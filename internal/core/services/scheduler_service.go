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
	"github.com/finbooks/finbooks/internal/middleware"
)

// schedulerActor is recorded as the actor on scheduler-driven writes.
const schedulerActor = "system:scheduler"

// SchedulerConfig carries the retention windows and tick intervals.
type SchedulerConfig struct {
	DraftRetentionDays   int
	IgnoredRetentionDays int
	AuditRetentionDays   int
	SweepInterval        time.Duration
	RecurringInterval    time.Duration
}

type schedulerService struct {
	BaseService
	cfg           SchedulerConfig
	txnRepo       portsrepo.TransactionRepositoryFacade
	bankFeedRepo  portsrepo.BankFeedWriter
	recurringRepo portsrepo.RecurringRepositoryFacade
	auditRepo     portsrepo.AuditWriter
	posting       portssvc.PostingService
}

// NewSchedulerService creates the periodic maintenance service.
func NewSchedulerService(
	cfg SchedulerConfig,
	txnRepo portsrepo.TransactionRepositoryFacade,
	bankFeedRepo portsrepo.BankFeedWriter,
	recurringRepo portsrepo.RecurringRepositoryFacade,
	auditRepo portsrepo.AuditWriter,
	posting portssvc.PostingService,
) portssvc.SchedulerService {
	return &schedulerService{
		cfg:           cfg,
		txnRepo:       txnRepo,
		bankFeedRepo:  bankFeedRepo,
		recurringRepo: recurringRepo,
		auditRepo:     auditRepo,
		posting:       posting,
	}
}

func (s *schedulerService) Start(ctx context.Context) {
	ctx = middleware.WithUserID(ctx, schedulerActor)
	go s.loop(ctx, s.cfg.SweepInterval, "retention sweep", s.RunRetentionSweep)
	go s.loop(ctx, s.cfg.RecurringInterval, "recurring templates", s.RunDueTemplates)
}

func (s *schedulerService) loop(ctx context.Context, interval time.Duration, name string, job func(context.Context) error) {
	if interval <= 0 {
		s.LogWarn(ctx, "Scheduler job disabled", "job", name)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.LogInfo(ctx, "Scheduler job stopping", "job", name)
			return
		case <-ticker.C:
			if err := job(ctx); err != nil {
				s.LogError(ctx, err, "Scheduler job failed", "job", name)
			}
		}
	}
}

// RunRetentionSweep deletes stale drafts and purges old ignored feed items
// and expired audit events.
func (s *schedulerService) RunRetentionSweep(ctx context.Context) error {
	staleIDs, err := s.txnRepo.FindDraftsOlderThan(ctx, s.cfg.DraftRetentionDays)
	if err != nil {
		return err
	}
	deleted := 0
	for _, id := range staleIDs {
		// Stale drafts carry their company on the row; the repository scopes
		// the delete by ID alone for the sweep.
		if err := s.txnRepo.DeleteDraft(ctx, "", id); err != nil {
			s.LogError(ctx, err, "Failed to delete stale draft", "transaction_id", id)
			continue
		}
		deleted++
	}

	purged, err := s.bankFeedRepo.PurgeIgnoredOlderThan(ctx, s.cfg.IgnoredRetentionDays)
	if err != nil {
		return err
	}

	auditPurged, err := s.auditRepo.PurgeEventsOlderThan(ctx, s.cfg.AuditRetentionDays)
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Retention sweep finished",
		"drafts_deleted", deleted,
		"feed_items_purged", purged,
		"audit_events_purged", auditPurged,
	)
	return nil
}

// RunDueTemplates clones and posts every due recurring template, then
// advances its next run date by the interval.
func (s *schedulerService) RunDueTemplates(ctx context.Context) error {
	now := time.Now()
	due, err := s.recurringRepo.FindDueTemplates(ctx, now)
	if err != nil {
		return err
	}

	for i := range due {
		template := &due[i]
		if err := s.runTemplate(ctx, template, now); err != nil {
			s.LogError(ctx, err, "Recurring template run failed", "template_id", template.TemplateID)
			continue
		}
		nextRun := template.NextRunDate.AddDate(0, 0, template.IntervalDays)
		// Catch up without firing once per missed interval.
		for !nextRun.After(now) {
			nextRun = nextRun.AddDate(0, 0, template.IntervalDays)
		}
		if err := s.recurringRepo.AdvanceTemplate(ctx, template.CompanyID, template.TemplateID, nextRun); err != nil {
			s.LogError(ctx, err, "Failed to advance recurring template", "template_id", template.TemplateID)
		}
	}
	return nil
}

func (s *schedulerService) runTemplate(ctx context.Context, template *domain.RecurringTemplate, now time.Time) error {
	source, err := s.txnRepo.FindTransactionByID(ctx, template.CompanyID, template.TemplateTransactionID)
	if err != nil {
		return err
	}
	if source.Status != domain.StatusDraft {
		return fmt.Errorf("template transaction %s is %s: %w", source.TransactionID, source.Status, apperrors.ErrInvalidState)
	}
	if source.Type.IsDocumentType() || source.Type.IsNoteType() {
		return fmt.Errorf("recurring templates support journal and cash types only: %w", apperrors.ErrValidation)
	}

	lines := make([]dto.TransactionLineRequest, len(source.Lines))
	for i, l := range source.Lines {
		lines[i] = dto.TransactionLineRequest{
			AccountID:  l.AccountID,
			Amount:     l.Amount,
			Direction:  l.Direction,
			TaxCode:    l.TaxCode,
			Department: l.Department,
		}
	}
	req := dto.CreateTransactionRequest{
		Type:            source.Type,
		TransactionDate: now,
		Reference:       template.Name,
		Description:     source.Description,
		CurrencyCode:    source.CurrencyCode,
		Lines:           lines,
	}

	draft, err := s.posting.CreateDraft(ctx, template.CompanyID, req, schedulerActor)
	if err != nil {
		return err
	}
	if _, err := s.posting.Post(ctx, template.CompanyID, draft.TransactionID, schedulerActor); err != nil {
		return err
	}

	s.LogInfo(ctx, "Recurring template posted", "template_id", template.TemplateID, "transaction_id", draft.TransactionID)
	return nil
}
