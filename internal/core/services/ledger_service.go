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

type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates the ledger read service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerService {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

func (s *ledgerService) GetEntriesByTransaction(ctx context.Context, companyID string, transactionID string) ([]domain.LedgerEntry, error) {
	return s.ledgerRepo.FindEntriesByTransaction(ctx, companyID, transactionID)
}

func (s *ledgerService) GetEntriesByAccount(ctx context.Context, companyID string, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("date range end precedes start: %w", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindEntriesByAccount(ctx, companyID, accountID, from, to)
}
