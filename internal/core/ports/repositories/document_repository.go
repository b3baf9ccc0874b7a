package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// DocumentReader defines read operations for allocatable documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document by ID within a company.
	FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.Document, error)
	// FindOpenDocuments lists POSTED documents of a kind with a positive balance,
	// due date ascending.
	FindOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.Document, error)
	// FindDocumentByTransaction retrieves the document created by a posting, if any.
	FindDocumentByTransaction(ctx context.Context, companyID string, transactionID string) (*domain.Document, error)
}

// DocumentRepositoryFacade is the document read surface. Document rows are
// created and mutated only inside transaction and allocation writes.
type DocumentRepositoryFacade interface {
	DocumentReader
}
