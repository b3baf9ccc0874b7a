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
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates the read repository for allocatable documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, company_id, kind, transaction_id, counterparty_name,
	issue_date, due_date, total, amount_paid, status, version,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.Kind,
		&m.TransactionID,
		&m.CounterpartyName,
		&m.IssueDate,
		&m.DueDate,
		&m.Total,
		&m.AmountPaid,
		&m.Status,
		&m.Version,
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

// insertDocumentTx inserts a document row inside tx. Shared with the
// transaction repository, which creates draft documents alongside drafts.
func insertDocumentTx(ctx context.Context, tx pgx.Tx, m models.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.Kind,
		m.TransactionID,
		m.CounterpartyName,
		m.IssueDate,
		m.DueDate,
		m.Total,
		m.AmountPaid,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND document_id = $2;
	`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, companyID, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

func (r *PgxDocumentRepository) FindOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND kind = $2 AND status = 'POSTED' AND amount_paid < total
		ORDER BY due_date, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, kind)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return docs, nil
}

func (r *PgxDocumentRepository) FindDocumentByTransaction(ctx context.Context, companyID string, transactionID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND transaction_id = $2;
	`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, companyID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document for transaction "+transactionID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}
