package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/shopspring/decimal"
)

type taxCodeService struct {
	BaseService
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade
}

// NewTaxCodeService creates the tax code directory service.
func NewTaxCodeService(taxCodeRepo portsrepo.TaxCodeRepositoryFacade) portssvc.TaxCodeService {
	return &taxCodeService{taxCodeRepo: taxCodeRepo}
}

func (s *taxCodeService) CreateTaxCode(ctx context.Context, companyID string, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error) {
	if req.Rate.LessThan(decimal.Zero) || req.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("rate must be a fraction between 0 and 1: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	taxCode := domain.TaxCode{
		Code:      req.Code,
		CompanyID: companyID,
		Name:      req.Name,
		Rate:      req.Rate,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxCodeRepo.SaveTaxCode(ctx, &taxCode); err != nil {
		s.LogError(ctx, err, "Failed to save tax code", "code", req.Code)
		return nil, err
	}

	s.LogInfo(ctx, "Tax code created", "code", taxCode.Code)
	return &taxCode, nil
}

func (s *taxCodeService) GetTaxCodeByCode(ctx context.Context, companyID string, code string) (*domain.TaxCode, error) {
	return s.taxCodeRepo.FindTaxCodeByCode(ctx, companyID, code)
}

func (s *taxCodeService) ListTaxCodes(ctx context.Context, companyID string) ([]domain.TaxCode, error) {
	return s.taxCodeRepo.FindTaxCodesByCompany(ctx, companyID)
}

func (s *taxCodeService) DeactivateTaxCode(ctx context.Context, companyID string, code string, updaterUserID string) error {
	if _, err := s.taxCodeRepo.FindTaxCodeByCode(ctx, companyID, code); err != nil {
		return err
	}
	return s.taxCodeRepo.DeactivateTaxCode(ctx, companyID, code, updaterUserID)
}
