package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// TaxCodeService manages the tax code directory.
type TaxCodeService interface {
	CreateTaxCode(ctx context.Context, companyID string, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error)
	GetTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error)
	ListTaxCodes(ctx context.Context, companyID string) ([]domain.TaxCode, error)
	DeactivateTaxCode(ctx context.Context, companyID string, code string, updaterUserID string) error
}
