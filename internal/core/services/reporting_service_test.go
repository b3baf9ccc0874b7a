package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingService
	companyID         string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_ZeroAsOfDefaultsToNow() {
	ctx := context.Background()

	var asOf time.Time
	suite.mockReportingRepo.On("TrialBalanceRows", ctx, suite.companyID, mock.AnythingOfType("time.Time"), 10).
		Run(func(args mock.Arguments) {
			asOf = args.Get(2).(time.Time)
		}).Return([]domain.TrialBalanceRow{}, nil).Once()

	_, err := suite.service.TrialBalance(ctx, suite.companyID, time.Time{}, 10)

	suite.Require().NoError(err)
	suite.False(asOf.IsZero())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_MissingPeriod() {
	ctx := context.Background()

	_, err := suite.service.ProfitAndLoss(ctx, suite.companyID, time.Time{}, time.Now(), "", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_EndBeforeStart() {
	ctx := context.Background()
	from := time.Now()
	to := from.AddDate(0, -1, 0)

	_, err := suite.service.ProfitAndLoss(ctx, suite.companyID, from, to, "", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestAgedReceivables_UsesInvoiceKind() {
	ctx := context.Background()
	asOf := time.Now()
	report := &domain.AgingReport{}

	suite.mockReportingRepo.On("AgedDocuments", ctx, suite.companyID, domain.KindSalesInvoice, asOf, 10).Return(report, nil).Once()

	got, err := suite.service.AgedReceivables(ctx, suite.companyID, asOf, 10)

	suite.Require().NoError(err)
	suite.Same(report, got)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAgedPayables_UsesBillKind() {
	ctx := context.Background()
	asOf := time.Now()
	report := &domain.AgingReport{}

	suite.mockReportingRepo.On("AgedDocuments", ctx, suite.companyID, domain.KindSupplierBill, asOf, 10).Return(report, nil).Once()

	_, err := suite.service.AgedPayables(ctx, suite.companyID, asOf, 10)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBankRegister_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BankRegister(ctx, suite.companyID, accountID, from, to, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "BankRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestBankRegister_AccountAboveSecurityLevel() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Asset,
		SecurityLevel:  7,
		IsActive:       true,
	}
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.BankRegister(ctx, suite.companyID, account.AccountID, from, to, 5)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "BankRegister", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestCashflowSummary_PassesSecurityLevel() {
	ctx := context.Background()
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now()
	report := &domain.CashflowReport{From: from, To: to}

	suite.mockReportingRepo.On("CashflowSummary", ctx, suite.companyID, from, to, 3).Return(report, nil).Once()

	got, err := suite.service.CashflowSummary(ctx, suite.companyID, from, to, 3)

	suite.Require().NoError(err)
	suite.Same(report, got)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
