package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// TaxCodeReader defines read operations for tax codes.
type TaxCodeReader interface {
	// FindTaxCodeByCode retrieves a tax code within a company.
	FindTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error)
	// FindTaxCodesByCompany lists all tax codes for a company.
	FindTaxCodesByCompany(ctx context.Context, companyID string) ([]domain.TaxCode, error)
}

// TaxCodeWriter defines write operations for tax codes.
type TaxCodeWriter interface {
	// SaveTaxCode persists a new tax code.
	SaveTaxCode(ctx context.Context, taxCode *domain.TaxCode) error
	// DeactivateTaxCode marks a tax code inactive.
	DeactivateTaxCode(ctx context.Context, companyID string, code string, updatedBy string) error
}

// TaxCodeRepositoryFacade combines reader and writer for tax codes.
type TaxCodeRepositoryFacade interface {
	TaxCodeReader
	TaxCodeWriter
}
