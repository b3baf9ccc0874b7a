package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// AllocationReader defines read operations for allocations.
type AllocationReader interface {
	// FindAllocationsByDocument lists allocations against a document.
	FindAllocationsByDocument(ctx context.Context, companyID string, documentID string) ([]domain.Allocation, error)
	// FindAllocationsByCashTransaction lists allocations made from a cash transaction.
	FindAllocationsByCashTransaction(ctx context.Context, companyID string, cashTransactionID string) ([]domain.Allocation, error)
	// HasAllocations reports whether a transaction participates in any
	// allocation, as payer or as the document source.
	HasAllocations(ctx context.Context, companyID string, transactionID string) (bool, error)
}

// AllocationWriter defines write operations for allocations.
type AllocationWriter interface {
	// Allocate inserts the allocation under the document's row lock,
	// re-derives AmountPaid from the allocation rows, and bumps the document
	// version. It returns apperrors.ErrOverAllocation when the amount no
	// longer fits the remaining balance and apperrors.ErrAlreadyAllocated
	// when the (cash transaction, document) pair already exists.
	Allocate(ctx context.Context, alloc *domain.Allocation) (*domain.Allocation, error)
	// RemoveAllocation deletes an allocation and re-derives the document's
	// AmountPaid under the same lock discipline as Allocate.
	RemoveAllocation(ctx context.Context, companyID string, allocationID string) error
}

// AllocationRepositoryFacade combines reader and writer for allocations.
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}
