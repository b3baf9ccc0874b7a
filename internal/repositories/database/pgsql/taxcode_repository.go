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

type PgxTaxCodeRepository struct {
	BaseRepository
}

// newPgxTaxCodeRepository creates the repository for the tax code directory.
func newPgxTaxCodeRepository(pool *pgxpool.Pool) portsrepo.TaxCodeRepositoryFacade {
	return &PgxTaxCodeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TaxCodeRepositoryFacade = (*PgxTaxCodeRepository)(nil)

const taxCodeColumns = `
	code, company_id, name, rate, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanTaxCode(row pgx.Row) (*models.TaxCode, error) {
	var m models.TaxCode
	err := row.Scan(
		&m.Code,
		&m.CompanyID,
		&m.Name,
		&m.Rate,
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

func (r *PgxTaxCodeRepository) SaveTaxCode(ctx context.Context, taxCode *domain.TaxCode) error {
	m := mapping.ToModelTaxCode(*taxCode)
	query := `
		INSERT INTO tax_codes (` + taxCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.CompanyID,
		m.Name,
		m.Rate,
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
		return apperrors.NewAppError(500, "failed to insert tax code "+m.Code, err)
	}
	return nil
}

func (r *PgxTaxCodeRepository) FindTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error) {
	query := `
		SELECT ` + taxCodeColumns + `
		FROM tax_codes
		WHERE company_id = $1 AND code = $2;
	`
	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax code "+code, err)
	}
	taxCode := mapping.ToDomainTaxCode(*m)
	return &taxCode, nil
}

func (r *PgxTaxCodeRepository) FindTaxCodesByCompany(ctx context.Context, companyID string) ([]domain.TaxCode, error) {
	query := `
		SELECT ` + taxCodeColumns + `
		FROM tax_codes
		WHERE company_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax codes", err)
	}
	defer rows.Close()

	var codes []domain.TaxCode
	for rows.Next() {
		m, err := scanTaxCode(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax code row", err)
		}
		codes = append(codes, mapping.ToDomainTaxCode(*m))
	}
	return codes, rows.Err()
}

func (r *PgxTaxCodeRepository) DeactivateTaxCode(ctx context.Context, companyID string, code string, updatedBy string) error {
	query := `
		UPDATE tax_codes
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND code = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, code, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate tax code "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
