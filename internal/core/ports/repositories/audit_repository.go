package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// AuditWriter appends to and prunes the audit trail.
type AuditWriter interface {
	// SaveAuditEvent persists one audit event.
	SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error
	// PurgeEventsOlderThan deletes events older than the cutoff, across all
	// companies, and reports how many rows went.
	PurgeEventsOlderThan(ctx context.Context, cutoffDays int) (int64, error)
}

// AuditReader defines read operations over the audit trail.
type AuditReader interface {
	// FindAuditEventsByEntity lists events for one entity, newest first.
	FindAuditEventsByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEvent, error)
}

// AuditRepositoryFacade combines reader and writer for audit events.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
