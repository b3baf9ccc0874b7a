package pgsql

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the read repository over the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `
	entry_id, company_id, account_id, transaction_id, entry_date,
	amount_dr, amount_cr, department, created_at, created_by
`

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.CompanyID,
			&m.AccountID,
			&m.TransactionID,
			&m.EntryDate,
			&m.AmountDr,
			&m.AmountCr,
			&m.Department,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func (r *PgxLedgerRepository) FindEntriesByTransaction(ctx context.Context, companyID string, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND transaction_id = $2
		ORDER BY created_at, entry_id;
	`
	return r.queryEntries(ctx, query, companyID, transactionID)
}

func (r *PgxLedgerRepository) FindEntriesByAccount(ctx context.Context, companyID string, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2 AND entry_date >= $3 AND entry_date <= $4
		ORDER BY entry_date, created_at, entry_id;
	`
	return r.queryEntries(ctx, query, companyID, accountID, from, to)
}

// AccountRawBalance folds debits minus credits up to and including asOf.
func (r *PgxLedgerRepository) AccountRawBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_dr - amount_cr), 0)
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2 AND entry_date <= $3;
	`
	var raw decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, asOf).Scan(&raw); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to fold balance for account "+accountID, err)
	}
	return raw, nil
}
