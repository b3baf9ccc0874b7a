package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the audit trail service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditService {
	return &auditService{auditRepo: auditRepo}
}

// Record persists an audit event. Failures are logged and swallowed so the
// audited operation is never failed by its trail.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) {
	if err := s.auditRepo.SaveAuditEvent(ctx, &event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			"action", string(event.Action),
			"entity_id", event.EntityID,
		)
	}
}

func (s *auditService) GetEventsByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEvent, error) {
	return s.auditRepo.FindAuditEventsByEntity(ctx, companyID, entityID)
}
