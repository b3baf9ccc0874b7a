package services_test

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) FindDraftsOlderThan(ctx context.Context, cutoffDays int) ([]string, error) {
	args := m.Called(ctx, cutoffDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) FindMatchCandidate(ctx context.Context, companyID string, bankAccountID string, amount decimal.Decimal, direction domain.LineDirection, from, to time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, bankAccountID, amount, direction, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveDraft(ctx context.Context, txn *domain.Transaction, doc *domain.Document) error {
	args := m.Called(ctx, txn, doc)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateDraft(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteDraft(ctx context.Context, companyID string, transactionID string) error {
	args := m.Called(ctx, companyID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) PostTransaction(ctx context.Context, txn *domain.Transaction, entries []domain.LedgerEntry, doc *domain.Document, noteAgainst *domain.NoteOffset) error {
	args := m.Called(ctx, txn, entries, doc, noteAgainst)
	return args.Error(0)
}

func (m *MockTransactionRepository) VoidTransaction(ctx context.Context, original *domain.Transaction, reversing *domain.Transaction, reversalEntries []domain.LedgerEntry) error {
	args := m.Called(ctx, original, reversing, reversalEntries)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, companyID string, accountID string, updatedBy string) error {
	args := m.Called(ctx, companyID, accountID, updatedBy)
	return args.Error(0)
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.Document, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentByTransaction(ctx context.Context, companyID string, transactionID string) (*domain.Document, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// --- Mock AllocationRepository ---

type MockAllocationRepository struct {
	mock.Mock
}

var _ portsrepo.AllocationRepositoryFacade = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) FindAllocationsByDocument(ctx context.Context, companyID string, documentID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) FindAllocationsByCashTransaction(ctx context.Context, companyID string, cashTransactionID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, companyID, cashTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) HasAllocations(ctx context.Context, companyID string, transactionID string) (bool, error) {
	args := m.Called(ctx, companyID, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAllocationRepository) Allocate(ctx context.Context, alloc *domain.Allocation) (*domain.Allocation, error) {
	args := m.Called(ctx, alloc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) RemoveAllocation(ctx context.Context, companyID string, allocationID string) error {
	args := m.Called(ctx, companyID, allocationID)
	return args.Error(0)
}

// --- Mock BankFeedRepository ---

type MockBankFeedRepository struct {
	mock.Mock
}

var _ portsrepo.BankFeedRepositoryFacade = (*MockBankFeedRepository)(nil)

func (m *MockBankFeedRepository) FindFeedItemByID(ctx context.Context, companyID string, itemID string) (*domain.BankFeedItem, error) {
	args := m.Called(ctx, companyID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankFeedItem), args.Error(1)
}

func (m *MockBankFeedRepository) FindFeedItemsByStatus(ctx context.Context, companyID string, bankAccountID string, status domain.BankFeedItemStatus) ([]domain.BankFeedItem, error) {
	args := m.Called(ctx, companyID, bankAccountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankFeedItem), args.Error(1)
}

func (m *MockBankFeedRepository) SummarizeUnmatched(ctx context.Context, companyID string) ([]domain.UnmatchedFeedSummary, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnmatchedFeedSummary), args.Error(1)
}

func (m *MockBankFeedRepository) FindRulesByCompany(ctx context.Context, companyID string) ([]domain.MatchRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchRule), args.Error(1)
}

func (m *MockBankFeedRepository) InsertFeedItems(ctx context.Context, items []domain.BankFeedItem) (int, int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockBankFeedRepository) MarkItemMatched(ctx context.Context, companyID string, itemID string, transactionID string, ruleID *string, updatedBy string) error {
	args := m.Called(ctx, companyID, itemID, transactionID, ruleID, updatedBy)
	return args.Error(0)
}

func (m *MockBankFeedRepository) MarkItemIgnored(ctx context.Context, companyID string, itemID string, updatedBy string) error {
	args := m.Called(ctx, companyID, itemID, updatedBy)
	return args.Error(0)
}

func (m *MockBankFeedRepository) SaveRule(ctx context.Context, rule *domain.MatchRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockBankFeedRepository) SetRuleEnabled(ctx context.Context, companyID string, ruleID string, enabled bool, updatedBy string) error {
	args := m.Called(ctx, companyID, ruleID, enabled, updatedBy)
	return args.Error(0)
}

func (m *MockBankFeedRepository) PurgeIgnoredOlderThan(ctx context.Context, cutoffDays int) (int64, error) {
	args := m.Called(ctx, cutoffDays)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntriesByTransaction(ctx context.Context, companyID string, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByAccount(ctx context.Context, companyID string, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AccountRawBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RecurringRepository ---

type MockRecurringRepository struct {
	mock.Mock
}

var _ portsrepo.RecurringRepositoryFacade = (*MockRecurringRepository)(nil)

func (m *MockRecurringRepository) FindTemplateByID(ctx context.Context, companyID string, templateID string) (*domain.RecurringTemplate, error) {
	args := m.Called(ctx, companyID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringTemplate), args.Error(1)
}

func (m *MockRecurringRepository) FindDueTemplates(ctx context.Context, now time.Time) ([]domain.RecurringTemplate, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Error(1)
}

func (m *MockRecurringRepository) FindTemplatesByCompany(ctx context.Context, companyID string) ([]domain.RecurringTemplate, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTemplate), args.Error(1)
}

func (m *MockRecurringRepository) SaveTemplate(ctx context.Context, template *domain.RecurringTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRecurringRepository) AdvanceTemplate(ctx context.Context, companyID string, templateID string, nextRun time.Time) error {
	args := m.Called(ctx, companyID, templateID, nextRun)
	return args.Error(0)
}

func (m *MockRecurringRepository) SetTemplateActive(ctx context.Context, companyID string, templateID string, active bool, updatedBy string) error {
	args := m.Called(ctx, companyID, templateID, active, updatedBy)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, department string, maxSecurityLevel int) (*domain.PAndLReport, error) {
	args := m.Called(ctx, companyID, from, to, department, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}

func (m *MockReportingRepository) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, companyID, asOf, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingRepository) AgedDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error) {
	args := m.Called(ctx, companyID, kind, asOf, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}

func (m *MockReportingRepository) CashflowSummary(ctx context.Context, companyID string, from, to time.Time, maxSecurityLevel int) (*domain.CashflowReport, error) {
	args := m.Called(ctx, companyID, from, to, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashflowReport), args.Error(1)
}

func (m *MockReportingRepository) BankRegister(ctx context.Context, companyID string, accountID string, from, to time.Time, maxSecurityLevel int) (*domain.BankRegisterReport, error) {
	args := m.Called(ctx, companyID, accountID, from, to, maxSecurityLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankRegisterReport), args.Error(1)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) PurgeEventsOlderThan(ctx context.Context, cutoffDays int) (int64, error) {
	args := m.Called(ctx, cutoffDays)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepository) FindAuditEventsByEntity(ctx context.Context, companyID string, entityID string) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, companyID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

// --- Mock AuditSink ---

type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

// --- Mock PostingService ---

type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingService = (*MockPostingService)(nil)

func (m *MockPostingService) CreateDraft(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) UpdateDraft(ctx context.Context, companyID string, transactionID string, req dto.UpdateDraftRequest, updaterUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) DeleteDraft(ctx context.Context, companyID string, transactionID string, deleterUserID string) error {
	args := m.Called(ctx, companyID, transactionID, deleterUserID)
	return args.Error(0)
}

func (m *MockPostingService) GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockPostingService) Post(ctx context.Context, companyID string, transactionID string, posterUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, posterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) Void(ctx context.Context, companyID string, transactionID string, reason string, voiderUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, reason, voiderUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
