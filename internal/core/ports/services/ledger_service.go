package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// LedgerService exposes read access to the append-only ledger.
type LedgerService interface {
	GetEntriesByTransaction(ctx context.Context, companyID string, transactionID string) ([]domain.LedgerEntry, error)
	GetEntriesByAccount(ctx context.Context, companyID string, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)
}
