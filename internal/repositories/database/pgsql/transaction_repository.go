package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/finbooks/finbooks/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates the repository for transaction headers,
// lines and their atomic posting writes.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, company_id, type, status, transaction_date, reference,
	description, currency_code, offsets_document_id,
	original_transaction_id, reversing_transaction_id, void_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var offsetsDoc, voidReason sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.Type,
		&m.Status,
		&m.TransactionDate,
		&m.Reference,
		&m.Description,
		&m.CurrencyCode,
		&offsetsDoc,
		&m.OriginalTransactionID,
		&m.ReversingTransactionID,
		&voidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.OffsetsDocumentID = offsetsDoc.String
	m.VoidReason = voidReason.String
	return &m, nil
}

// insertHeaderTx inserts the transaction header inside tx.
func (r *PgxTransactionRepository) insertHeaderTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.CompanyID,
		m.Type,
		m.Status,
		m.TransactionDate,
		m.Reference,
		m.Description,
		m.CurrencyCode,
		nullableString(m.OffsetsDocumentID),
		m.OriginalTransactionID,
		m.ReversingTransactionID,
		nullableString(m.VoidReason),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// insertLinesTx batch-inserts the transaction lines inside tx.
func (r *PgxTransactionRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.TransactionLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transaction_lines (
			line_id, transaction_id, account_id, amount, direction,
			tax_code, department, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		m := mapping.ToModelTransactionLine(line)
		batch.Queue(query,
			m.LineID,
			m.TransactionID,
			m.AccountID,
			m.Amount,
			m.Direction,
			nullableString(m.TaxCode),
			m.Department,
			m.Notes,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// insertLedgerEntriesTx batch-inserts immutable ledger entries inside tx.
func (r *PgxTransactionRepository) insertLedgerEntriesTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO ledger_entries (
			entry_id, company_id, account_id, transaction_id, entry_date,
			amount_dr, amount_cr, department, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, e := range entries {
		batch.Queue(query,
			e.EntryID,
			e.CompanyID,
			e.AccountID,
			e.TransactionID,
			e.EntryDate,
			e.AmountDr,
			e.AmountCr,
			e.Department,
			e.CreatedAt,
			e.CreatedBy,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *PgxTransactionRepository) SaveDraft(ctx context.Context, txn *domain.Transaction, doc *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertHeaderTx(ctx, tx, mapping.ToModelTransaction(*txn)); err != nil {
		return apperrors.NewAppError(500, "failed to insert draft "+txn.TransactionID, err)
	}
	if len(txn.Lines) > 0 {
		if err := r.insertLinesTx(ctx, tx, txn.Lines); err != nil {
			return apperrors.NewAppError(500, "failed to insert draft lines for "+txn.TransactionID, err)
		}
	}
	if doc != nil {
		if err := insertDocumentTx(ctx, tx, mapping.ToModelDocument(*doc)); err != nil {
			return apperrors.NewAppError(500, "failed to insert draft document for "+txn.TransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateDraft(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(*txn)
	query := `
		UPDATE transactions
		SET transaction_date = $3, reference = $4, description = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND transaction_id = $2 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query,
		m.CompanyID,
		m.TransactionID,
		m.TransactionDate,
		m.Reference,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update draft "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or no longer a draft.
		return apperrors.ErrConflict
	}

	// Lines are replaced wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1;`, m.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear draft lines for "+m.TransactionID, err)
	}
	if len(txn.Lines) > 0 {
		if err := r.insertLinesTx(ctx, tx, txn.Lines); err != nil {
			return apperrors.NewAppError(500, "failed to insert draft lines for "+m.TransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteDraft(ctx context.Context, companyID string, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete draft lines for "+transactionID, err)
	}
	// Draft documents ride along with their draft transaction.
	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE transaction_id = $1 AND status = 'DRAFT';`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete draft document for "+transactionID, err)
	}

	query := `DELETE FROM transactions WHERE transaction_id = $1 AND status = 'DRAFT'`
	args := []any{transactionID}
	if companyID != "" {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	tag, err := tx.Exec(ctx, query+";", args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete draft "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// PostTransaction flips a draft to POSTED and writes its ledger entries,
// document and note side effects in one database transaction.
func (r *PgxTransactionRepository) PostTransaction(ctx context.Context, txn *domain.Transaction, entries []domain.LedgerEntry, doc *domain.Document, noteAgainst *domain.NoteOffset) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(*txn)
	statusQuery := `
		UPDATE transactions
		SET status = 'POSTED', last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND transaction_id = $2 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, statusQuery, m.CompanyID, m.TransactionID, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Lost the race with another poster or a delete.
		return apperrors.ErrInvalidState
	}

	if err := r.insertLedgerEntriesTx(ctx, tx, entries); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entries for "+m.TransactionID, err)
	}

	if doc != nil {
		md := mapping.ToModelDocument(*doc)
		docQuery := `
			UPDATE documents
			SET total = $3, status = 'POSTED', version = version + 1,
			    last_updated_at = $4, last_updated_by = $5
			WHERE company_id = $1 AND document_id = $2 AND status = 'DRAFT';
		`
		tag, err := tx.Exec(ctx, docQuery, md.CompanyID, md.DocumentID, md.Total, md.LastUpdatedAt, md.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to post document "+md.DocumentID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrInvalidState
		}
	}

	if noteAgainst != nil {
		if err := applyNoteOffsetTx(ctx, tx, m.CompanyID, noteAgainst, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// applyNoteOffsetTx locks the offset document, re-validates the note amount
// against the remaining balance, and applies it.
func applyNoteOffsetTx(ctx context.Context, tx pgx.Tx, companyID string, note *domain.NoteOffset, now time.Time, userID string) error {
	var total, amountPaid decimal.Decimal
	var status string
	lockQuery := `
		SELECT total, amount_paid, status
		FROM documents
		WHERE company_id = $1 AND document_id = $2
		FOR UPDATE;
	`
	err := tx.QueryRow(ctx, lockQuery, companyID, note.DocumentID).Scan(&total, &amountPaid, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock document "+note.DocumentID, err)
	}
	if status != "POSTED" {
		return apperrors.ErrInvalidState
	}
	if note.Amount.GreaterThan(total.Sub(amountPaid)) {
		return apperrors.ErrExceedsBalance
	}

	updateQuery := `
		UPDATE documents
		SET amount_paid = amount_paid + $3, note_offset_total = note_offset_total + $3,
		    version = version + 1,
		    last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND document_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, companyID, note.DocumentID, note.Amount, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to apply note offset to document "+note.DocumentID, err)
	}
	return nil
}

// VoidTransaction marks the original VOID, inserts the POSTED reversal with
// its entries, links the pair and unwinds document side effects.
func (r *PgxTransactionRepository) VoidTransaction(ctx context.Context, original *domain.Transaction, reversing *domain.Transaction, reversalEntries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mo := mapping.ToModelTransaction(*original)
	voidQuery := `
		UPDATE transactions
		SET status = 'VOID', void_reason = $3, reversing_transaction_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $1 AND transaction_id = $2 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, voidQuery,
		mo.CompanyID,
		mo.TransactionID,
		mo.VoidReason,
		mo.ReversingTransactionID,
		mo.LastUpdatedAt,
		mo.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void transaction "+mo.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}

	if err := r.insertHeaderTx(ctx, tx, mapping.ToModelTransaction(*reversing)); err != nil {
		return apperrors.NewAppError(500, "failed to insert reversal "+reversing.TransactionID, err)
	}
	if err := r.insertLinesTx(ctx, tx, reversing.Lines); err != nil {
		return apperrors.NewAppError(500, "failed to insert reversal lines for "+reversing.TransactionID, err)
	}
	if err := r.insertLedgerEntriesTx(ctx, tx, reversalEntries); err != nil {
		return apperrors.NewAppError(500, "failed to insert reversal entries for "+reversing.TransactionID, err)
	}

	switch {
	case original.Type.IsDocumentType():
		// The document is dead once its source is voided. Allocation absence
		// was checked before the void; the lock here closes the race.
		docQuery := `
			UPDATE documents
			SET status = 'VOID', version = version + 1,
			    last_updated_at = $3, last_updated_by = $4
			WHERE company_id = $1 AND transaction_id = $2 AND status = 'POSTED';
		`
		if _, err := tx.Exec(ctx, docQuery, mo.CompanyID, mo.TransactionID, mo.LastUpdatedAt, mo.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to void document for "+mo.TransactionID, err)
		}
	case original.Type.IsNoteType() && original.OffsetsDocumentID != "":
		// Give the note's amount back to the offset document, under its lock.
		noteAmount := original.CashAmount()
		lockQuery := `SELECT 1 FROM documents WHERE company_id = $1 AND document_id = $2 FOR UPDATE;`
		var one int
		if err := tx.QueryRow(ctx, lockQuery, mo.CompanyID, original.OffsetsDocumentID).Scan(&one); err != nil {
			return apperrors.NewAppError(500, "failed to lock offset document "+original.OffsetsDocumentID, err)
		}
		unwindQuery := `
			UPDATE documents
			SET amount_paid = amount_paid - $3, note_offset_total = note_offset_total - $3,
			    version = version + 1,
			    last_updated_at = $4, last_updated_by = $5
			WHERE company_id = $1 AND document_id = $2;
		`
		if _, err := tx.Exec(ctx, unwindQuery, mo.CompanyID, original.OffsetsDocumentID, noteAmount, mo.LastUpdatedAt, mo.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to unwind note offset for "+mo.TransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND transaction_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	lines, err := r.findLines(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines
	return &txn, nil
}

func (r *PgxTransactionRepository) findLines(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	query := `
		SELECT line_id, transaction_id, account_id, amount, direction,
		       tax_code, department, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for "+transactionID, err)
	}
	defer rows.Close()

	var lines []models.TransactionLine
	for rows.Next() {
		var m models.TransactionLine
		var taxCode sql.NullString
		if err := rows.Scan(
			&m.LineID,
			&m.TransactionID,
			&m.AccountID,
			&m.Amount,
			&m.Direction,
			&taxCode,
			&m.Department,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		m.TaxCode = taxCode.String
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return mapping.ToDomainTransactionLineSlice(lines), nil
}

// FindTransactionsByCompany pages newest first on (transaction_date, created_at).
func (r *PgxTransactionRepository) FindTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1
	`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, txnDate, createdAt)
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for company "+companyID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
		txns = txns[:limit]
	}
	return txns, newNextToken, nil
}

// FindMatchCandidate picks the oldest POSTED cash transaction carrying a
// bank-account line with exactly this amount and direction inside the date
// window, skipping transactions already claimed by a matched feed item.
func (r *PgxTransactionRepository) FindMatchCandidate(ctx context.Context, companyID string, bankAccountID string, amount decimal.Decimal, direction domain.LineDirection, from, to time.Time) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE company_id = $1 AND status = 'POSTED'
		  AND type IN ('PAYMENT', 'RECEIPT')
		  AND transaction_date BETWEEN $5 AND $6
		  AND transaction_id IN (
		      SELECT transaction_id FROM transaction_lines
		      WHERE account_id = $2 AND amount = $3 AND direction = $4
		  )
		  AND NOT EXISTS (
		      SELECT 1 FROM bank_feed_items
		      WHERE matched_transaction_id = transactions.transaction_id
		  )
		ORDER BY transaction_date, created_at
		LIMIT 1;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, companyID, bankAccountID, amount, string(direction), from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find match candidate for account "+bankAccountID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	lines, err := r.findLines(ctx, txn.TransactionID)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines
	return &txn, nil
}

func (r *PgxTransactionRepository) FindDraftsOlderThan(ctx context.Context, cutoffDays int) ([]string, error) {
	query := `
		SELECT transaction_id
		FROM transactions
		WHERE status = 'DRAFT' AND last_updated_at < NOW() - make_interval(days => $1);
	`
	rows, err := r.Pool.Query(ctx, query, cutoffDays)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stale drafts", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stale draft row", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
