package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates the repository for recurring templates.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

const templateColumns = `
	template_id, company_id, name, template_transaction_id,
	interval_days, next_run_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanTemplate(row pgx.Row) (*models.RecurringTemplate, error) {
	var m models.RecurringTemplate
	err := row.Scan(
		&m.TemplateID,
		&m.CompanyID,
		&m.Name,
		&m.TemplateTransactionID,
		&m.IntervalDays,
		&m.NextRunDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxRecurringRepository) SaveTemplate(ctx context.Context, template *domain.RecurringTemplate) error {
	m := mapping.ToModelRecurringTemplate(*template)
	query := `
		INSERT INTO recurring_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TemplateID,
		m.CompanyID,
		m.Name,
		m.TemplateTransactionID,
		m.IntervalDays,
		m.NextRunDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert recurring template "+m.TemplateID, err)
	}
	return nil
}

func (r *PgxRecurringRepository) FindTemplateByID(ctx context.Context, companyID string, templateID string) (*domain.RecurringTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE company_id = $1 AND template_id = $2;
	`
	m, err := scanTemplate(r.Pool.QueryRow(ctx, query, companyID, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find recurring template "+templateID, err)
	}
	template := mapping.ToDomainRecurringTemplate(*m)
	return &template, nil
}

func (r *PgxRecurringRepository) FindDueTemplates(ctx context.Context, now time.Time) ([]domain.RecurringTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE is_active = TRUE AND next_run_date <= $1
		ORDER BY next_run_date, template_id;
	`
	rows, err := r.Pool.Query(ctx, query, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query due templates", err)
	}
	defer rows.Close()

	var templates []domain.RecurringTemplate
	for rows.Next() {
		m, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		templates = append(templates, mapping.ToDomainRecurringTemplate(*m))
	}
	return templates, rows.Err()
}

func (r *PgxRecurringRepository) FindTemplatesByCompany(ctx context.Context, companyID string) ([]domain.RecurringTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE company_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates for company "+companyID, err)
	}
	defer rows.Close()

	var templates []domain.RecurringTemplate
	for rows.Next() {
		m, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		templates = append(templates, mapping.ToDomainRecurringTemplate(*m))
	}
	return templates, rows.Err()
}

func (r *PgxRecurringRepository) AdvanceTemplate(ctx context.Context, companyID string, templateID string, nextRun time.Time) error {
	query := `
		UPDATE recurring_templates
		SET next_run_date = $3, last_updated_at = NOW()
		WHERE company_id = $1 AND template_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, templateID, nextRun)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance recurring template "+templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRepository) SetTemplateActive(ctx context.Context, companyID string, templateID string, active bool, updatedBy string) error {
	query := `
		UPDATE recurring_templates
		SET is_active = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE company_id = $1 AND template_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, templateID, active, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to toggle recurring template "+templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
