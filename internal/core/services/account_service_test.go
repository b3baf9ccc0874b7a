package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/core/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountService
	companyID       string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1000",
		Name:           "Cash at Bank",
		Classification: domain.Asset,
		CurrencyCode:   "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.Equal("1000", account.Code)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidClassification() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1000",
		Name:           "Cash at Bank",
		Classification: domain.AccountClassification("CONTRA"),
		CurrencyCode:   "USD",
	}

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentClassificationMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Liability,
		IsActive:       true,
	}
	req := dto.CreateAccountRequest{
		Code:            "1010",
		Name:            "Petty Cash",
		Classification:  domain.Asset,
		CurrencyCode:    "USD",
		ParentAccountID: parent.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1010",
		Name:            "Petty Cash",
		Classification:  domain.Asset,
		CurrencyCode:    "USD",
		ParentAccountID: parentID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SecurityLevelOutOfRange() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Asset,
		IsActive:       true,
	}
	level := 11

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{SecurityLevel: &level}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_DebitNormal() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Asset,
		IsActive:       true,
	}
	asOf := time.Now()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AccountRawBalance", ctx, suite.companyID, account.AccountID, asOf).Return(decimal.NewFromInt(500), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.companyID, account.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_CreditNormalNegates() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Income,
		IsActive:       true,
	}
	asOf := time.Now()

	// Raw fold is DR minus CR; income normally carries a credit balance, so
	// the signed balance flips.
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AccountRawBalance", ctx, suite.companyID, account.AccountID, asOf).Return(decimal.NewFromInt(-750), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.companyID, account.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(750)))
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
