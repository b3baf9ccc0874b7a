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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.AccountService {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.Classification.IsValid() {
		return nil, fmt.Errorf("unknown classification %q: %w", req.Classification, apperrors.ErrValidation)
	}
	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, companyID, req.ParentAccountID)
		if err != nil {
			s.LogError(ctx, err, "Parent account lookup failed", "parent_account_id", req.ParentAccountID)
			return nil, fmt.Errorf("parent account not found: %w", apperrors.ErrValidation)
		}
		if parent.Classification != req.Classification {
			return nil, fmt.Errorf("parent account classification mismatch: %w", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		Classification:  req.Classification,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		SecurityLevel:   req.SecurityLevel,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		s.LogError(ctx, err, "Failed to save account", "code", req.Code)
		return nil, err
	}

	s.LogInfo(ctx, "Account created", "account_id", account.AccountID, "code", account.Code)
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, companyID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByCompany(ctx, companyID)
}

func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.SecurityLevel != nil {
		if *req.SecurityLevel < 0 || *req.SecurityLevel > 10 {
			return nil, fmt.Errorf("security level out of range: %w", apperrors.ErrValidation)
		}
		account.SecurityLevel = *req.SecurityLevel
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, err
	}

	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, updaterUserID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, companyID, accountID, updaterUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", "account_id", accountID)
		return err
	}
	s.LogInfo(ctx, "Account deactivated", "account_id", accountID)
	return nil
}

func (s *accountService) GetAccountBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := s.ledgerRepo.AccountRawBalance(ctx, companyID, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fold account balance", "account_id", accountID)
		return decimal.Zero, err
	}

	return domain.SignedBalance(raw, account.Classification), nil
}
