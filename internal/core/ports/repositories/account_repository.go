package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// AccountReader defines read operations for accounts.
type AccountReader interface {
	// FindAccountByID retrieves an account by its ID within a company.
	FindAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)
	// FindAccountsByIDs retrieves accounts keyed by ID. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	// FindAccountsByCompany lists all accounts for a company.
	FindAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account *domain.Account) error
	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account *domain.Account) error
	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, updatedBy string) error
}

// AccountRepositoryFacade combines reader and writer for accounts.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
