package pgsql

import (
	"context"
	"errors"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates the repository for allocation rows and
// the locked AmountPaid maintenance they require.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryFacade {
	return &PgxAllocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

// Allocate runs the full allocation write under row locks taken in a fixed
// order, cash transaction first, then document: re-validate both headrooms,
// insert the row, re-derive amount_paid from the rows, bump the version.
func (r *PgxAllocationRepository) Allocate(ctx context.Context, alloc *domain.Allocation) (*domain.Allocation, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var txnStatus string
	txnLockQuery := `
		SELECT status FROM transactions
		WHERE company_id = $1 AND transaction_id = $2
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, txnLockQuery, alloc.CompanyID, alloc.CashTransactionID).Scan(&txnStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock cash transaction "+alloc.CashTransactionID, err)
	}
	if txnStatus != "POSTED" {
		return nil, apperrors.ErrInvalidState
	}

	// Authoritative cash headroom check. The transaction row lock serializes
	// concurrent allocations from the same payment, so the sum cannot move
	// between the read and the insert.
	var cashAmount, allocated decimal.Decimal
	headroomQuery := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM transaction_lines
			          WHERE transaction_id = $2 AND direction = 'DEBIT'), 0),
			COALESCE((SELECT SUM(amount) FROM allocations
			          WHERE company_id = $1 AND cash_transaction_id = $2), 0);
	`
	err = tx.QueryRow(ctx, headroomQuery, alloc.CompanyID, alloc.CashTransactionID).Scan(&cashAmount, &allocated)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum cash headroom for "+alloc.CashTransactionID, err)
	}
	if allocated.Add(alloc.Amount).GreaterThan(cashAmount) {
		return nil, apperrors.ErrOverAllocation
	}

	var total, amountPaid decimal.Decimal
	var status string
	lockQuery := `
		SELECT total, amount_paid, status
		FROM documents
		WHERE company_id = $1 AND document_id = $2
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, lockQuery, alloc.CompanyID, alloc.DocumentID).Scan(&total, &amountPaid, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock document "+alloc.DocumentID, err)
	}
	if status != "POSTED" {
		return nil, apperrors.ErrInvalidState
	}
	// Authoritative document headroom check, now that the document cannot move.
	if alloc.Amount.GreaterThan(total.Sub(amountPaid)) {
		return nil, apperrors.ErrOverAllocation
	}

	insertQuery := `
		INSERT INTO allocations (
			allocation_id, company_id, cash_transaction_id, document_id,
			amount, allocated_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		alloc.AllocationID,
		alloc.CompanyID,
		alloc.CashTransactionID,
		alloc.DocumentID,
		alloc.Amount,
		alloc.AllocatedAt,
		alloc.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAllocated
		}
		return nil, apperrors.NewAppError(500, "failed to insert allocation "+alloc.AllocationID, err)
	}

	if err := rederiveAmountPaidTx(ctx, tx, alloc.CompanyID, alloc.DocumentID, alloc.CreatedBy); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return alloc, nil
}

// rederiveAmountPaidTx recomputes amount_paid from the allocation rows plus
// any note offsets already folded in, then bumps the version. The caller must
// hold the document's row lock.
func rederiveAmountPaidTx(ctx context.Context, tx pgx.Tx, companyID, documentID, userID string) error {
	query := `
		UPDATE documents d
		SET amount_paid = COALESCE((
			SELECT SUM(a.amount) FROM allocations a
			WHERE a.company_id = d.company_id AND a.document_id = d.document_id
		), 0) + d.note_offset_total,
		    version = version + 1,
		    last_updated_at = NOW(),
		    last_updated_by = $3
		WHERE d.company_id = $1 AND d.document_id = $2;
	`
	if _, err := tx.Exec(ctx, query, companyID, documentID, userID); err != nil {
		return apperrors.NewAppError(500, "failed to re-derive amount paid for "+documentID, err)
	}
	return nil
}

func (r *PgxAllocationRepository) RemoveAllocation(ctx context.Context, companyID string, allocationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var documentID, createdBy string
	findQuery := `
		SELECT document_id, created_by FROM allocations
		WHERE company_id = $1 AND allocation_id = $2;
	`
	err = tx.QueryRow(ctx, findQuery, companyID, allocationID).Scan(&documentID, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to find allocation "+allocationID, err)
	}

	// Lock before touching the rows the derivation reads.
	lockQuery := `SELECT 1 FROM documents WHERE company_id = $1 AND document_id = $2 FOR UPDATE;`
	var one int
	if err := tx.QueryRow(ctx, lockQuery, companyID, documentID).Scan(&one); err != nil {
		return apperrors.NewAppError(500, "failed to lock document "+documentID, err)
	}

	deleteQuery := `DELETE FROM allocations WHERE company_id = $1 AND allocation_id = $2;`
	if _, err := tx.Exec(ctx, deleteQuery, companyID, allocationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete allocation "+allocationID, err)
	}

	if err := rederiveAmountPaidTx(ctx, tx, companyID, documentID, createdBy); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const allocationColumns = `
	allocation_id, company_id, cash_transaction_id, document_id,
	amount, allocated_at, created_by
`

func (r *PgxAllocationRepository) queryAllocations(ctx context.Context, query string, args ...any) ([]domain.Allocation, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations", err)
	}
	defer rows.Close()

	var allocs []models.Allocation
	for rows.Next() {
		var m models.Allocation
		if err := rows.Scan(
			&m.AllocationID,
			&m.CompanyID,
			&m.CashTransactionID,
			&m.DocumentID,
			&m.Amount,
			&m.AllocatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		allocs = append(allocs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}
	return mapping.ToDomainAllocationSlice(allocs), nil
}

func (r *PgxAllocationRepository) FindAllocationsByDocument(ctx context.Context, companyID string, documentID string) ([]domain.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE company_id = $1 AND document_id = $2
		ORDER BY allocated_at, allocation_id;
	`
	return r.queryAllocations(ctx, query, companyID, documentID)
}

func (r *PgxAllocationRepository) FindAllocationsByCashTransaction(ctx context.Context, companyID string, cashTransactionID string) ([]domain.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE company_id = $1 AND cash_transaction_id = $2
		ORDER BY allocated_at, allocation_id;
	`
	return r.queryAllocations(ctx, query, companyID, cashTransactionID)
}

// HasAllocations checks both sides: the transaction as the payer, and the
// transaction as the source of an allocated document.
func (r *PgxAllocationRepository) HasAllocations(ctx context.Context, companyID string, transactionID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM allocations
			WHERE company_id = $1 AND cash_transaction_id = $2
		) OR EXISTS (
			SELECT 1 FROM allocations a
			JOIN documents d ON d.company_id = a.company_id AND d.document_id = a.document_id
			WHERE a.company_id = $1 AND d.transaction_id = $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, companyID, transactionID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check allocations for "+transactionID, err)
	}
	return exists, nil
}
