package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// PostingService owns the transaction lifecycle: draft, post, void.
type PostingService interface {
	CreateDraft(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	UpdateDraft(ctx context.Context, companyID string, transactionID string, req dto.UpdateDraftRequest, updaterUserID string) (*domain.Transaction, error)
	DeleteDraft(ctx context.Context, companyID string, transactionID string, deleterUserID string) error
	GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	// Post validates a DRAFT (balanced, non-empty, active accounts) and
	// atomically flips it to POSTED with its ledger entries and document
	// side effects.
	Post(ctx context.Context, companyID string, transactionID string, posterUserID string) (*domain.Transaction, error)
	// Void reverses a POSTED transaction by creating and posting a reversing
	// transaction, linking the pair. Blocked while allocations reference the
	// original.
	Void(ctx context.Context, companyID string, transactionID string, reason string, voiderUserID string) (*domain.Transaction, error)
}
