package pgsql

import (
	"context"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates the repository for the append-only audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (
			event_id, company_id, action, entity_id, actor_id, detail, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.EventID,
		event.CompanyID,
		event.Action,
		event.EntityID,
		event.ActorID,
		event.Detail,
		event.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+event.EventID, err)
	}
	return nil
}

func (r *PgxAuditRepository) PurgeEventsOlderThan(ctx context.Context, cutoffDays int) (int64, error) {
	query := `DELETE FROM audit_events WHERE occurred_at < NOW() - make_interval(days => $1);`
	tag, err := r.Pool.Exec(ctx, query, cutoffDays)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge old audit events", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxAuditRepository) FindAuditEventsByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEvent, error) {
	query := `
		SELECT event_id, company_id, action, entity_id, actor_id, detail, occurred_at
		FROM audit_events
		WHERE company_id = $1 AND entity_id = $2
		ORDER BY occurred_at DESC, event_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit events for "+entityID, err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		if err := rows.Scan(&e.EventID, &e.CompanyID, &e.Action, &e.EntityID, &e.ActorID, &e.Detail, &e.OccurredAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit event row", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
