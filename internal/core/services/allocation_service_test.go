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
type AllocationServiceTestSuite struct {
	suite.Suite
	mockAllocationRepo *MockAllocationRepository
	mockDocumentRepo   *MockDocumentRepository
	mockTxnRepo        *MockTransactionRepository
	mockAudit          *MockAuditSink
	service            portssvc.AllocationService
	companyID          string
	userID             string
	receipt            *domain.Transaction
	invoice            *domain.Document
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAudit = new(MockAuditSink)
	suite.service = services.NewAllocationService(
		suite.mockAllocationRepo,
		suite.mockDocumentRepo,
		suite.mockTxnRepo,
		suite.mockAudit,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	// A posted receipt worth 100.
	receiptID := uuid.NewString()
	suite.receipt = &domain.Transaction{
		TransactionID: receiptID,
		CompanyID:     suite.companyID,
		Type:          domain.TypeReceipt,
		Status:        domain.StatusPosted,
		CurrencyCode:  "USD",
		Lines: []domain.TransactionLine{
			{LineID: uuid.NewString(), TransactionID: receiptID, AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{LineID: uuid.NewString(), TransactionID: receiptID, AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	// A posted invoice for 150 with 50 already paid.
	suite.invoice = &domain.Document{
		DocumentID:       uuid.NewString(),
		CompanyID:        suite.companyID,
		Kind:             domain.KindSalesInvoice,
		TransactionID:    uuid.NewString(),
		CounterpartyName: "Acme Ltd",
		IssueDate:        time.Now().AddDate(0, 0, -30),
		DueDate:          time.Now(),
		Total:            decimal.NewFromInt(150),
		AmountPaid:       decimal.NewFromInt(50),
		Status:           domain.DocPosted,
		Version:          2,
	}
}

func (suite *AllocationServiceTestSuite) allocateRequest(amount int64) dto.AllocateRequest {
	return dto.AllocateRequest{
		CashTransactionID: suite.receipt.TransactionID,
		DocumentID:        suite.invoice.DocumentID,
		Amount:            decimal.NewFromInt(amount),
	}
}

// --- Test Cases ---

func (suite *AllocationServiceTestSuite) TestAllocate_Success() {
	ctx := context.Background()
	req := suite.allocateRequest(60)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, suite.companyID, suite.invoice.DocumentID).Return(suite.invoice, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationsByCashTransaction", ctx, suite.companyID, suite.receipt.TransactionID).Return([]domain.Allocation{}, nil).Once()
	suite.mockAllocationRepo.On("Allocate", ctx, mock.AnythingOfType("*domain.Allocation")).
		Return(&domain.Allocation{AllocationID: uuid.NewString(), Amount: req.Amount}, nil).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return().Once()

	alloc, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(alloc)
	suite.NotEmpty(alloc.AllocationID)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestAllocate_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.allocateRequest(0)

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestAllocate_NotCashTransaction() {
	ctx := context.Background()
	suite.receipt.Type = domain.TypeJournal
	req := suite.allocateRequest(60)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AllocationServiceTestSuite) TestAllocate_CashTransactionNotPosted() {
	ctx := context.Background()
	suite.receipt.Status = domain.StatusDraft
	req := suite.allocateRequest(60)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AllocationServiceTestSuite) TestAllocate_DocumentNotPosted() {
	ctx := context.Background()
	suite.invoice.Status = domain.DocVoid
	req := suite.allocateRequest(60)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, suite.companyID, suite.invoice.DocumentID).Return(suite.invoice, nil).Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AllocationServiceTestSuite) TestAllocate_OverDocumentBalance() {
	ctx := context.Background()
	// Balance is 100; 110 exceeds it.
	req := suite.allocateRequest(110)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, suite.companyID, suite.invoice.DocumentID).Return(suite.invoice, nil).Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverAllocation)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestAllocate_CashHeadroomExceeded() {
	ctx := context.Background()
	// The receipt is worth 100 and 70 is already allocated elsewhere.
	req := suite.allocateRequest(40)
	existing := []domain.Allocation{
		{AllocationID: uuid.NewString(), CashTransactionID: suite.receipt.TransactionID, Amount: decimal.NewFromInt(70)},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, suite.companyID, suite.invoice.DocumentID).Return(suite.invoice, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationsByCashTransaction", ctx, suite.companyID, suite.receipt.TransactionID).Return(existing, nil).Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverAllocation)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestAllocate_ConcurrentCashHeadroomRejectedByRepository() {
	ctx := context.Background()
	// Two 60 allocations race out of the 100 receipt. Each request reads the
	// allocation set before the other's insert, so both snapshots show full
	// headroom. The repository's re-check under the cash transaction's row
	// lock must reject the second insert anyway.
	req := suite.allocateRequest(60)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, suite.receipt.TransactionID).Return(suite.receipt, nil).Twice()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, suite.companyID, suite.invoice.DocumentID).Return(suite.invoice, nil).Twice()
	suite.mockAllocationRepo.On("FindAllocationsByCashTransaction", ctx, suite.companyID, suite.receipt.TransactionID).Return([]domain.Allocation{}, nil).Twice()
	suite.mockAllocationRepo.On("Allocate", ctx, mock.AnythingOfType("*domain.Allocation")).
		Return(&domain.Allocation{AllocationID: uuid.NewString(), Amount: req.Amount}, nil).Once()
	suite.mockAllocationRepo.On("Allocate", ctx, mock.AnythingOfType("*domain.Allocation")).
		Return(nil, apperrors.ErrOverAllocation).Once()
	suite.mockAudit.On("Record", ctx, mock.AnythingOfType("domain.AuditEvent")).Return().Once()

	_, err := suite.service.Allocate(ctx, suite.companyID, req, suite.userID)
	suite.Require().NoError(err)

	_, err = suite.service.Allocate(ctx, suite.companyID, req, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverAllocation)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestListOpenDocuments_UnknownKind() {
	ctx := context.Background()

	_, err := suite.service.ListOpenDocuments(ctx, suite.companyID, domain.DocumentKind("RECEIPT"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindOpenDocuments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestRemoveAllocation_Success() {
	ctx := context.Background()
	allocationID := uuid.NewString()

	suite.mockAllocationRepo.On("RemoveAllocation", ctx, suite.companyID, allocationID).Return(nil).Once()

	err := suite.service.RemoveAllocation(ctx, suite.companyID, allocationID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAllocationService(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
