package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// ReportingReader defines the ledger folds behind the derived reports.
// Every method takes maxSecurityLevel; accounts above it are excluded from
// the fold entirely, never partially redacted.
type ReportingReader interface {
	// TrialBalanceRows folds per-account debit and credit totals as of a date.
	TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) ([]domain.TrialBalanceRow, error)
	// ProfitAndLoss folds income and expense account movement over a period,
	// optionally restricted to one department.
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, department string, maxSecurityLevel int) (*domain.PAndLReport, error)
	// BalanceSheet folds asset, liability and equity balances as of a date.
	// Retained earnings absorbs lifetime income and expense movement.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.BalanceSheetReport, error)
	// AgedDocuments lists open documents of a kind bucketed by days overdue.
	// Documents whose posting transaction touches an account above
	// maxSecurityLevel are excluded. Balances are current state; asOf only
	// sets the reference date for the overdue buckets.
	AgedDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error)
	// CashflowSummary folds receipts and payments over a period.
	CashflowSummary(ctx context.Context, companyID string, from, to time.Time, maxSecurityLevel int) (*domain.CashflowReport, error)
	// BankRegister lists an account's entries over a period with a running
	// balance, including the opening balance brought forward.
	BankRegister(ctx context.Context, companyID string, accountID string, from, to time.Time, maxSecurityLevel int) (*domain.BankRegisterReport, error)
}

// ReportingRepositoryFacade is the reporting read surface.
type ReportingRepositoryFacade interface {
	ReportingReader
}
