package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// AllocationService links cash transactions to open documents.
type AllocationService interface {
	// Allocate applies part of a cash transaction's amount against a
	// document's balance.
	Allocate(ctx context.Context, companyID string, req dto.AllocateRequest, creatorUserID string) (*domain.Allocation, error)
	RemoveAllocation(ctx context.Context, companyID string, allocationID string, removerUserID string) error
	GetAllocationsByDocument(ctx context.Context, companyID string, documentID string) ([]domain.Allocation, error)
	GetAllocationsByCashTransaction(ctx context.Context, companyID string, cashTransactionID string) ([]domain.Allocation, error)
	GetDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.Document, error)
	ListOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.Document, error)
}
