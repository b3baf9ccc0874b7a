package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates the derived reports service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) ([]domain.TrialBalanceRow, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	rows, err := s.reportingRepo.TrialBalanceRows(ctx, companyID, asOf, maxSecurityLevel)
	if err != nil {
		s.LogError(ctx, err, "Trial balance fold failed")
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, department string, maxSecurityLevel int) (*domain.PAndLReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	report, err := s.reportingRepo.ProfitAndLoss(ctx, companyID, from, to, department, maxSecurityLevel)
	if err != nil {
		s.LogError(ctx, err, "Profit and loss fold failed")
		return nil, err
	}
	return report, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.BalanceSheetReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	report, err := s.reportingRepo.BalanceSheet(ctx, companyID, asOf, maxSecurityLevel)
	if err != nil {
		s.LogError(ctx, err, "Balance sheet fold failed")
		return nil, err
	}
	return report, nil
}

func (s *reportingService) AgedReceivables(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return s.reportingRepo.AgedDocuments(ctx, companyID, domain.KindSalesInvoice, asOf, maxSecurityLevel)
}

func (s *reportingService) AgedPayables(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return s.reportingRepo.AgedDocuments(ctx, companyID, domain.KindSupplierBill, asOf, maxSecurityLevel)
}

func (s *reportingService) CashflowSummary(ctx context.Context, companyID string, from, to time.Time, maxSecurityLevel int) (*domain.CashflowReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return s.reportingRepo.CashflowSummary(ctx, companyID, from, to, maxSecurityLevel)
}

func (s *reportingService) BankRegister(ctx context.Context, companyID string, accountID string, from, to time.Time, maxSecurityLevel int) (*domain.BankRegisterReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}
	if account.SecurityLevel > maxSecurityLevel {
		return nil, fmt.Errorf("account %s is above the caller's security level: %w", accountID, apperrors.ErrForbidden)
	}
	return s.reportingRepo.BankRegister(ctx, companyID, accountID, from, to, maxSecurityLevel)
}

func validatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("period start and end are required: %w", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return fmt.Errorf("period end precedes start: %w", apperrors.ErrValidation)
	}
	return nil
}
