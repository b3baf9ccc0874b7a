package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// AuditSink records audit events. Recording is best effort; a sink failure
// never fails the operation being audited.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent)
}

// AuditService exposes the audit trail for reading alongside the sink.
type AuditService interface {
	AuditSink
	GetEventsByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEvent, error)
}
