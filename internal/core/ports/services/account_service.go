package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountService manages the chart of accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID string, accountID string, updaterUserID string) error
	// GetAccountBalance returns the signed balance of one account as of a
	// date, positive in the account's natural direction.
	GetAccountBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}
