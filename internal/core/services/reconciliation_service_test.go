package services_test

import (
	"context"
	"errors"
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
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockBankFeedRepo *MockBankFeedRepository
	mockAccountRepo  *MockAccountRepository
	mockTxnRepo      *MockTransactionRepository
	mockPosting      *MockPostingService
	mockAudit        *MockAuditSink
	service          portssvc.ReconciliationService
	bankAccount      domain.Account
	companyID        string
	userID           string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockBankFeedRepo = new(MockBankFeedRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockPosting = new(MockPostingService)
	suite.mockAudit = new(MockAuditSink)
	suite.service = services.NewReconciliationService(
		suite.mockBankFeedRepo,
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockPosting,
		suite.mockAudit,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.bankAccount = domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		Classification: domain.Asset,
		CurrencyCode:   "USD",
		IsActive:       true,
	}
}

func (suite *ReconciliationServiceTestSuite) feedItem(amount int64, description string) domain.BankFeedItem {
	return domain.BankFeedItem{
		ItemID:        uuid.NewString(),
		CompanyID:     suite.companyID,
		BankAccountID: suite.bankAccount.AccountID,
		ImportBatchID: "batch-1",
		FitID:         uuid.NewString(),
		PostedDate:    time.Now(),
		Amount:        decimal.NewFromInt(amount),
		Description:   description,
		Status:        domain.FeedNew,
	}
}

// --- ImportFeed ---

func (suite *ReconciliationServiceTestSuite) TestImportFeed_Success() {
	ctx := context.Background()
	req := dto.ImportFeedRequest{
		BankAccountID: suite.bankAccount.AccountID,
		ImportBatchID: "batch-1",
		Items: []dto.FeedItemRequest{
			{FitID: "FIT-1", PostedDate: time.Now(), Amount: decimal.NewFromInt(120), Description: "Deposit"},
			{FitID: "FIT-2", PostedDate: time.Now(), Amount: decimal.NewFromInt(-45), Description: "Card payment"},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()

	var inserted []domain.BankFeedItem
	suite.mockBankFeedRepo.On("InsertFeedItems", ctx, mock.AnythingOfType("[]domain.BankFeedItem")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).([]domain.BankFeedItem)
		}).Return(2, 0, nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return().Once()

	resp, err := suite.service.ImportFeed(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.Imported)
	suite.Equal(0, resp.Skipped)
	suite.Require().Len(inserted, 2)
	suite.Equal(domain.FeedNew, inserted[0].Status)
	suite.Equal("batch-1", inserted[0].ImportBatchID)
	suite.mockBankFeedRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestImportFeed_NonAssetAccount() {
	ctx := context.Background()
	suite.bankAccount.Classification = domain.Expense
	req := dto.ImportFeedRequest{
		BankAccountID: suite.bankAccount.AccountID,
		ImportBatchID: "batch-1",
		Items:         []dto.FeedItemRequest{{FitID: "FIT-1", PostedDate: time.Now(), Amount: decimal.NewFromInt(10)}},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()

	_, err := suite.service.ImportFeed(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankFeedRepo.AssertNotCalled(suite.T(), "InsertFeedItems", mock.Anything, mock.Anything)
}

// --- MatchItem / IgnoreItem ---

func (suite *ReconciliationServiceTestSuite) TestMatchItem_Success() {
	ctx := context.Background()
	item := suite.feedItem(120, "Deposit")
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeReceipt,
		Status:        domain.StatusPosted,
	}

	suite.mockBankFeedRepo.On("FindFeedItemByID", ctx, suite.companyID, item.ItemID).Return(&item, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, txn.TransactionID).Return(txn, nil).Once()
	suite.mockBankFeedRepo.On("MarkItemMatched", ctx, suite.companyID, item.ItemID, txn.TransactionID, (*string)(nil), suite.userID).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return().Once()

	err := suite.service.MatchItem(ctx, suite.companyID, item.ItemID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockBankFeedRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMatchItem_AlreadyMatched() {
	ctx := context.Background()
	item := suite.feedItem(120, "Deposit")
	item.Status = domain.FeedMatched

	suite.mockBankFeedRepo.On("FindFeedItemByID", ctx, suite.companyID, item.ItemID).Return(&item, nil).Once()

	err := suite.service.MatchItem(ctx, suite.companyID, item.ItemID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestMatchItem_TransactionNotPosted() {
	ctx := context.Background()
	item := suite.feedItem(120, "Deposit")
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeReceipt,
		Status:        domain.StatusDraft,
	}

	suite.mockBankFeedRepo.On("FindFeedItemByID", ctx, suite.companyID, item.ItemID).Return(&item, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.MatchItem(ctx, suite.companyID, item.ItemID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockBankFeedRepo.AssertNotCalled(suite.T(), "MarkItemMatched", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestIgnoreItem_NotNew() {
	ctx := context.Background()
	item := suite.feedItem(120, "Deposit")
	item.Status = domain.FeedIgnored

	suite.mockBankFeedRepo.On("FindFeedItemByID", ctx, suite.companyID, item.ItemID).Return(&item, nil).Once()

	err := suite.service.IgnoreItem(ctx, suite.companyID, item.ItemID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- AutoMatch ---

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_PostsAndMarksMatched() {
	ctx := context.Background()
	inflow := suite.feedItem(200, "STRIPE PAYOUT 88421")
	unmatched := suite.feedItem(75, "no rule covers this one")
	rule := domain.MatchRule{
		RuleID:    uuid.NewString(),
		CompanyID: suite.companyID,
		Pattern:   "stripe payout",
		AccountID: uuid.NewString(),
		Priority:  10,
		IsEnabled: true,
	}

	suite.mockBankFeedRepo.On("FindFeedItemsByStatus", ctx, suite.companyID, suite.bankAccount.AccountID, domain.FeedNew).
		Return([]domain.BankFeedItem{inflow, unmatched}, nil).Once()
	suite.mockBankFeedRepo.On("FindRulesByCompany", ctx, suite.companyID).Return([]domain.MatchRule{rule}, nil).Once()
	suite.mockTxnRepo.On("FindMatchCandidate", ctx, suite.companyID, suite.bankAccount.AccountID,
		mock.AnythingOfType("decimal.Decimal"), domain.Debit, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Twice()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()

	draft := &domain.Transaction{TransactionID: uuid.NewString(), CompanyID: suite.companyID, Type: domain.TypeReceipt, Status: domain.StatusDraft}
	posted := &domain.Transaction{TransactionID: draft.TransactionID, CompanyID: suite.companyID, Type: domain.TypeReceipt, Status: domain.StatusPosted}

	var createReq dto.CreateTransactionRequest
	suite.mockPosting.On("CreateDraft", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			createReq = args.Get(2).(dto.CreateTransactionRequest)
		}).Return(draft, nil).Once()
	suite.mockPosting.On("Post", ctx, suite.companyID, draft.TransactionID, suite.userID).Return(posted, nil).Once()
	suite.mockBankFeedRepo.On("MarkItemMatched", ctx, suite.companyID, inflow.ItemID, posted.TransactionID, &rule.RuleID, suite.userID).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.companyID, suite.bankAccount.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, resp.Examined)
	suite.Equal(1, resp.Matched)
	// Positive inflow posts a receipt debiting the bank account.
	suite.Equal(domain.TypeReceipt, createReq.Type)
	suite.Require().Len(createReq.Lines, 2)
	suite.Equal(suite.bankAccount.AccountID, createReq.Lines[0].AccountID)
	suite.Equal(domain.Debit, createReq.Lines[0].Direction)
	suite.Equal(rule.AccountID, createReq.Lines[1].AccountID)
	suite.Equal(domain.Credit, createReq.Lines[1].Direction)
	suite.True(createReq.Lines[0].Amount.Equal(decimal.NewFromInt(200)))
	suite.mockPosting.AssertExpectations(suite.T())
	suite.mockBankFeedRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_ExactMatchSkipsPosting() {
	ctx := context.Background()
	item := suite.feedItem(200, "STRIPE PAYOUT 88421")
	existing := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeReceipt,
		Status:        domain.StatusPosted,
	}

	suite.mockBankFeedRepo.On("FindFeedItemsByStatus", ctx, suite.companyID, suite.bankAccount.AccountID, domain.FeedNew).
		Return([]domain.BankFeedItem{item}, nil).Once()
	suite.mockBankFeedRepo.On("FindRulesByCompany", ctx, suite.companyID).Return([]domain.MatchRule{}, nil).Once()
	suite.mockTxnRepo.On("FindMatchCandidate", ctx, suite.companyID, suite.bankAccount.AccountID,
		item.Amount, domain.Debit, item.PostedDate.AddDate(0, 0, -3), item.PostedDate.AddDate(0, 0, 3)).
		Return(existing, nil).Once()
	suite.mockBankFeedRepo.On("MarkItemMatched", ctx, suite.companyID, item.ItemID, existing.TransactionID, (*string)(nil), suite.userID).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.companyID, suite.bankAccount.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Examined)
	suite.Equal(1, resp.Matched)
	// An existing posted transaction satisfies the item without a new posting.
	suite.mockPosting.AssertNotCalled(suite.T(), "CreateDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBankFeedRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_NegativeAmountPostsPayment() {
	ctx := context.Background()
	outflow := suite.feedItem(-80, "AWS BILL 2026-07")
	rule := domain.MatchRule{
		RuleID:    uuid.NewString(),
		CompanyID: suite.companyID,
		Pattern:   "aws bill",
		AccountID: uuid.NewString(),
		Priority:  5,
		IsEnabled: true,
	}

	suite.mockBankFeedRepo.On("FindFeedItemsByStatus", ctx, suite.companyID, suite.bankAccount.AccountID, domain.FeedNew).
		Return([]domain.BankFeedItem{outflow}, nil).Once()
	suite.mockBankFeedRepo.On("FindRulesByCompany", ctx, suite.companyID).Return([]domain.MatchRule{rule}, nil).Once()
	suite.mockTxnRepo.On("FindMatchCandidate", ctx, suite.companyID, suite.bankAccount.AccountID,
		mock.AnythingOfType("decimal.Decimal"), domain.Credit, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()

	draft := &domain.Transaction{TransactionID: uuid.NewString(), CompanyID: suite.companyID, Type: domain.TypePayment, Status: domain.StatusDraft}
	posted := &domain.Transaction{TransactionID: draft.TransactionID, CompanyID: suite.companyID, Type: domain.TypePayment, Status: domain.StatusPosted}

	var createReq dto.CreateTransactionRequest
	suite.mockPosting.On("CreateDraft", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			createReq = args.Get(2).(dto.CreateTransactionRequest)
		}).Return(draft, nil).Once()
	suite.mockPosting.On("Post", ctx, suite.companyID, draft.TransactionID, suite.userID).Return(posted, nil).Once()
	suite.mockBankFeedRepo.On("MarkItemMatched", ctx, suite.companyID, outflow.ItemID, posted.TransactionID, &rule.RuleID, suite.userID).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.companyID, suite.bankAccount.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Matched)
	// Negative outflow posts a payment crediting the bank account for the
	// absolute amount.
	suite.Equal(domain.TypePayment, createReq.Type)
	suite.Equal(domain.Credit, createReq.Lines[0].Direction)
	suite.True(createReq.Lines[0].Amount.Equal(decimal.NewFromInt(80)))
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_PostFailureSkipsItem() {
	ctx := context.Background()
	item := suite.feedItem(30, "STRIPE PAYOUT 99")
	rule := domain.MatchRule{
		RuleID:    uuid.NewString(),
		CompanyID: suite.companyID,
		Pattern:   "stripe",
		AccountID: uuid.NewString(),
		IsEnabled: true,
	}

	suite.mockBankFeedRepo.On("FindFeedItemsByStatus", ctx, suite.companyID, suite.bankAccount.AccountID, domain.FeedNew).
		Return([]domain.BankFeedItem{item}, nil).Once()
	suite.mockBankFeedRepo.On("FindRulesByCompany", ctx, suite.companyID).Return([]domain.MatchRule{rule}, nil).Once()
	suite.mockTxnRepo.On("FindMatchCandidate", ctx, suite.companyID, suite.bankAccount.AccountID,
		mock.AnythingOfType("decimal.Decimal"), domain.Debit, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPosting.On("CreateDraft", ctx, suite.companyID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Return(nil, errors.New("db down")).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.companyID, suite.bankAccount.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Examined)
	suite.Equal(0, resp.Matched)
	suite.mockBankFeedRepo.AssertNotCalled(suite.T(), "MarkItemMatched", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Rules ---

func (suite *ReconciliationServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	counterAccount := domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Classification: domain.Income, IsActive: true}
	req := dto.CreateRuleRequest{Pattern: "payroll", AccountID: counterAccount.AccountID, Priority: 3}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, counterAccount.AccountID).Return(&counterAccount, nil).Once()
	suite.mockBankFeedRepo.On("SaveRule", ctx, mock.AnythingOfType("*domain.MatchRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rule)
	suite.True(rule.IsEnabled)
	suite.Equal(3, rule.Priority)
	suite.mockBankFeedRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCreateRule_UnknownAccount() {
	ctx := context.Background()
	req := dto.CreateRuleRequest{Pattern: "payroll", AccountID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, req.AccountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateRule(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBankFeedRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
