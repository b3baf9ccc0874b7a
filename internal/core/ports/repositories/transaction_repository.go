package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its lines.
	FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error)
	// FindTransactionsByCompany lists transactions for a company, newest first,
	// using a cursor token for pagination.
	FindTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	// FindDraftsOlderThan lists DRAFT transaction IDs last updated before the cutoff.
	FindDraftsOlderThan(ctx context.Context, cutoffDays int) ([]string, error)
	// FindMatchCandidate looks for a POSTED cash transaction with a line on
	// the bank account carrying exactly this amount and direction, dated
	// inside [from, to], that no feed item has been matched to yet.
	// apperrors.ErrNotFound when none qualifies.
	FindMatchCandidate(ctx context.Context, companyID string, bankAccountID string, amount decimal.Decimal, direction domain.LineDirection, from, to time.Time) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
//
// PostTransaction and VoidTransaction are the two atomic state changes of
// the ledger. Both run in a single database transaction so the header,
// lines, ledger entries and any document side effects commit or roll back
// together.
type TransactionWriter interface {
	// SaveDraft persists a new DRAFT transaction and its lines. For
	// invoice/bill types the draft document row is created alongside.
	SaveDraft(ctx context.Context, txn *domain.Transaction, doc *domain.Document) error
	// UpdateDraft replaces the mutable fields and lines of a DRAFT transaction.
	UpdateDraft(ctx context.Context, txn *domain.Transaction) error
	// DeleteDraft removes a DRAFT transaction and its lines.
	DeleteDraft(ctx context.Context, companyID string, transactionID string) error
	// PostTransaction flips a DRAFT to POSTED, writes its ledger entries,
	// and creates the document for invoice/bill types. For note types the
	// offset document is locked and its remaining balance re-checked before
	// the note amount is applied; apperrors.ErrExceedsBalance is returned
	// when the note no longer fits.
	PostTransaction(ctx context.Context, txn *domain.Transaction, entries []domain.LedgerEntry, doc *domain.Document, noteAgainst *domain.NoteOffset) error
	// VoidTransaction marks the original VOID, persists the POSTED reversing
	// transaction with its entries, links the pair, and unwinds any document
	// or note side effects of the original posting.
	VoidTransaction(ctx context.Context, original *domain.Transaction, reversing *domain.Transaction, reversalEntries []domain.LedgerEntry) error
}

// TransactionRepositoryFacade combines reader and writer for transactions.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
