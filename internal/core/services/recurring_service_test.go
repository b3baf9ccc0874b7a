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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type RecurringServiceTestSuite struct {
	suite.Suite
	mockRecurringRepo *MockRecurringRepository
	mockTxnRepo       *MockTransactionRepository
	service           portssvc.RecurringService
	companyID         string
	userID            string
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewRecurringService(suite.mockRecurringRepo, suite.mockTxnRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *RecurringServiceTestSuite) createRequest(transactionID string) dto.CreateTemplateRequest {
	return dto.CreateTemplateRequest{
		Name:                  "Monthly rent",
		TemplateTransactionID: transactionID,
		IntervalDays:          30,
		NextRunDate:           time.Now().AddDate(0, 1, 0),
	}
}

// --- Test Cases ---

func (suite *RecurringServiceTestSuite) TestCreateTemplate_Success() {
	ctx := context.Background()
	source := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeJournal,
		Status:        domain.StatusDraft,
	}
	req := suite.createRequest(source.TransactionID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, source.TransactionID).Return(source, nil).Once()
	suite.mockRecurringRepo.On("SaveTemplate", ctx, mock.AnythingOfType("*domain.RecurringTemplate")).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(template)
	suite.NotEmpty(template.TemplateID)
	suite.True(template.IsActive)
	suite.Equal(30, template.IntervalDays)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateTemplate_SourceNotDraft() {
	ctx := context.Background()
	source := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeJournal,
		Status:        domain.StatusPosted,
	}
	req := suite.createRequest(source.TransactionID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, source.TransactionID).Return(source, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateTemplate_DocumentTypeRejected() {
	ctx := context.Background()
	source := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Type:          domain.TypeSupplierBill,
		Status:        domain.StatusDraft,
	}
	req := suite.createRequest(source.TransactionID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, source.TransactionID).Return(source, nil).Once()

	_, err := suite.service.CreateTemplate(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RecurringServiceTestSuite) TestSetTemplateActive_NotFound() {
	ctx := context.Background()
	templateID := uuid.NewString()

	suite.mockRecurringRepo.On("FindTemplateByID", ctx, suite.companyID, templateID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SetTemplateActive(ctx, suite.companyID, templateID, false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SetTemplateActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestRecurringService(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
