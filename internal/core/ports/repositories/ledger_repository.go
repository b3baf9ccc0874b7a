package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// FindEntriesByTransaction lists the ledger entries of one transaction.
	FindEntriesByTransaction(ctx context.Context, companyID string, transactionID string) ([]domain.LedgerEntry, error)
	// FindEntriesByAccount lists entries for an account in a date range,
	// oldest first.
	FindEntriesByAccount(ctx context.Context, companyID string, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)
	// AccountRawBalance folds debits minus credits for an account up to and
	// including asOf.
	AccountRawBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// LedgerRepositoryFacade is the ledger's full repository surface. Entries
// are only ever written through TransactionWriter; there is no standalone
// ledger writer.
type LedgerRepositoryFacade interface {
	LedgerReader
}
