package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// ReportingService derives reports from the ledger. Reports are computed on
// demand, never stored. maxSecurityLevel excludes accounts above the
// caller's level from the fold.
type ReportingService interface {
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) ([]domain.TrialBalanceRow, error)
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, department string, maxSecurityLevel int) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.BalanceSheetReport, error)
	AgedReceivables(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error)
	AgedPayables(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error)
	CashflowSummary(ctx context.Context, companyID string, from, to time.Time, maxSecurityLevel int) (*domain.CashflowReport, error)
	BankRegister(ctx context.Context, companyID string, accountID string, from, to time.Time, maxSecurityLevel int) (*domain.BankRegisterReport, error)
}
