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
	"github.com/finbooks/finbooks/internal/utils/accounting"
	"github.com/google/uuid"
)

type postingService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	accountRepo    portsrepo.AccountReader
	documentRepo   portsrepo.DocumentReader
	allocationRepo portsrepo.AllocationReader
	audit          portssvc.AuditSink
}

// NewPostingService creates the transaction lifecycle service.
func NewPostingService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	documentRepo portsrepo.DocumentReader,
	allocationRepo portsrepo.AllocationReader,
	audit portssvc.AuditSink,
) portssvc.PostingService {
	return &postingService{
		txnRepo:        txnRepo,
		accountRepo:    accountRepo,
		documentRepo:   documentRepo,
		allocationRepo: allocationRepo,
		audit:          audit,
	}
}

func (s *postingService) CreateDraft(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if req.Type.IsDocumentType() && req.Document == nil {
		return nil, fmt.Errorf("document details required for %s: %w", req.Type, apperrors.ErrValidation)
	}
	if !req.Type.IsDocumentType() && req.Document != nil {
		return nil, fmt.Errorf("document details only valid for invoice and bill types: %w", apperrors.ErrValidation)
	}
	if req.Type.IsNoteType() && req.OffsetsDocumentID == "" {
		return nil, fmt.Errorf("note requires the document it offsets: %w", apperrors.ErrValidation)
	}
	if !req.Type.IsNoteType() && req.OffsetsDocumentID != "" {
		return nil, fmt.Errorf("offsetsDocumentID only valid for note types: %w", apperrors.ErrValidation)
	}
	if req.Type.IsNoteType() {
		// The offset document must exist up front. Its balance is only
		// checked at post time, under its row lock.
		doc, err := s.documentRepo.FindDocumentByID(ctx, companyID, req.OffsetsDocumentID)
		if err != nil {
			return nil, err
		}
		if doc.Status != domain.DocPosted {
			return nil, fmt.Errorf("offset document is not posted: %w", apperrors.ErrInvalidState)
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		CompanyID:         companyID,
		Type:              req.Type,
		Status:            domain.StatusDraft,
		TransactionDate:   req.TransactionDate,
		Reference:         req.Reference,
		Description:       req.Description,
		CurrencyCode:      req.CurrencyCode,
		OffsetsDocumentID: req.OffsetsDocumentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	txn.Lines = s.buildLines(txn.TransactionID, req.Lines, creatorUserID, now)

	var doc *domain.Document
	if req.Type.IsDocumentType() {
		kind := domain.KindSalesInvoice
		if req.Type == domain.TypeSupplierBill {
			kind = domain.KindSupplierBill
		}
		doc = &domain.Document{
			DocumentID:       uuid.NewString(),
			CompanyID:        companyID,
			Kind:             kind,
			TransactionID:    txn.TransactionID,
			CounterpartyName: req.Document.CounterpartyName,
			IssueDate:        req.Document.IssueDate,
			DueDate:          req.Document.DueDate,
			Total:            txn.CashAmount(), // Finalized at post time from the posted lines
			Status:           domain.DocDraft,
			Version:          1,
			AuditFields:      txn.AuditFields,
		}
	}

	if err := s.txnRepo.SaveDraft(ctx, &txn, doc); err != nil {
		s.LogError(ctx, err, "Failed to save draft", "type", string(req.Type))
		return nil, err
	}

	s.LogInfo(ctx, "Draft created", "transaction_id", txn.TransactionID, "type", string(txn.Type))
	return &txn, nil
}

func (s *postingService) UpdateDraft(ctx context.Context, companyID string, transactionID string, req dto.UpdateDraftRequest, updaterUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("only drafts can be edited: %w", apperrors.ErrInvalidState)
	}

	now := time.Now()
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Reference != nil {
		txn.Reference = *req.Reference
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Lines != nil {
		txn.Lines = s.buildLines(txn.TransactionID, req.Lines, updaterUserID, now)
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = updaterUserID

	if err := s.txnRepo.UpdateDraft(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to update draft", "transaction_id", transactionID)
		return nil, err
	}

	return txn, nil
}

func (s *postingService) DeleteDraft(ctx context.Context, companyID string, transactionID string, deleterUserID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.StatusDraft {
		return fmt.Errorf("only drafts can be deleted: %w", apperrors.ErrInvalidState)
	}
	if err := s.txnRepo.DeleteDraft(ctx, companyID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft", "transaction_id", transactionID)
		return err
	}
	s.LogInfo(ctx, "Draft deleted", "transaction_id", transactionID, "deleted_by", deleterUserID)
	return nil
}

func (s *postingService) GetTransactionByID(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
}

func (s *postingService) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.txnRepo.FindTransactionsByCompany(ctx, companyID, limit, nextToken)
}

func (s *postingService) Post(ctx context.Context, companyID string, transactionID string, posterUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusDraft {
		return nil, fmt.Errorf("transaction %s is %s: %w", transactionID, txn.Status, apperrors.ErrInvalidState)
	}
	if len(txn.Lines) == 0 {
		return nil, apperrors.ErrEmptyTransaction
	}
	if err := accounting.ValidateBalanced(txn.Lines); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnbalancedTransaction)
	}

	accounts, err := s.resolveActiveAccounts(ctx, companyID, txn)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := buildLedgerEntries(txn, now, posterUserID)

	var doc *domain.Document
	var noteAgainst *domain.NoteOffset
	switch {
	case txn.Type.IsDocumentType():
		doc, err = s.documentRepo.FindDocumentByTransaction(ctx, companyID, transactionID)
		if err != nil {
			return nil, err
		}
		doc.Total = txn.CashAmount()
		doc.Status = domain.DocPosted
		doc.LastUpdatedAt = now
		doc.LastUpdatedBy = posterUserID
	case txn.Type.IsNoteType():
		noteAgainst = &domain.NoteOffset{
			DocumentID: txn.OffsetsDocumentID,
			Amount:     txn.CashAmount(),
		}
	}

	txn.Status = domain.StatusPosted
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = posterUserID

	if err := s.txnRepo.PostTransaction(ctx, txn, entries, doc, noteAgainst); err != nil {
		s.LogError(ctx, err, "Failed to post transaction", "transaction_id", transactionID)
		return nil, err
	}

	s.LogInfo(ctx, "Transaction posted",
		"transaction_id", transactionID,
		"type", string(txn.Type),
		"line_count", len(txn.Lines),
		"account_count", len(accounts),
	)
	s.audit.Record(ctx, domain.AuditEvent{
		EventID:    uuid.NewString(),
		CompanyID:  companyID,
		Action:     domain.AuditPosted,
		EntityID:   transactionID,
		ActorID:    posterUserID,
		Detail:     fmt.Sprintf("posted %s for %s", txn.Type, txn.CashAmount().String()),
		OccurredAt: now,
	})
	return txn, nil
}

func (s *postingService) Void(ctx context.Context, companyID string, transactionID string, reason string, voiderUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPosted {
		return nil, fmt.Errorf("transaction %s is %s: %w", transactionID, txn.Status, apperrors.ErrInvalidState)
	}

	allocated, err := s.allocationRepo.HasAllocations(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if allocated {
		return nil, apperrors.ErrHasAllocations
	}

	now := time.Now()
	reversing := buildReversal(txn, reason, voiderUserID, now)
	reversalEntries := buildLedgerEntries(reversing, now, voiderUserID)

	txn.Status = domain.StatusVoid
	txn.VoidReason = reason
	txn.ReversingTransactionID = &reversing.TransactionID
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = voiderUserID

	if err := s.txnRepo.VoidTransaction(ctx, txn, reversing, reversalEntries); err != nil {
		s.LogError(ctx, err, "Failed to void transaction", "transaction_id", transactionID)
		return nil, err
	}

	s.LogInfo(ctx, "Transaction voided", "transaction_id", transactionID, "reversing_transaction_id", reversing.TransactionID)
	s.audit.Record(ctx, domain.AuditEvent{
		EventID:    uuid.NewString(),
		CompanyID:  companyID,
		Action:     domain.AuditVoided,
		EntityID:   transactionID,
		ActorID:    voiderUserID,
		Detail:     reason,
		OccurredAt: now,
	})
	return txn, nil
}

func (s *postingService) buildLines(transactionID string, reqs []dto.TransactionLineRequest, userID string, now time.Time) []domain.TransactionLine {
	lines := make([]domain.TransactionLine, len(reqs))
	for i, lr := range reqs {
		lines[i] = domain.TransactionLine{
			LineID:        uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     lr.AccountID,
			Amount:        lr.Amount,
			Direction:     lr.Direction,
			TaxCode:       lr.TaxCode,
			Department:    lr.Department,
			Notes:         lr.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// resolveActiveAccounts loads every account the lines reference and verifies
// each exists, is active and carries the transaction's currency.
func (s *postingService) resolveActiveAccounts(ctx context.Context, companyID string, txn *domain.Transaction) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(txn.Lines))
	seen := make(map[string]struct{}, len(txn.Lines))
	for _, l := range txn.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s not found: %w", id, apperrors.ErrValidation)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("account %s is inactive: %w", id, apperrors.ErrValidation)
		}
		if account.CurrencyCode != txn.CurrencyCode {
			return nil, fmt.Errorf("account %s currency %s does not match transaction currency %s: %w",
				id, account.CurrencyCode, txn.CurrencyCode, apperrors.ErrValidation)
		}
	}
	return accounts, nil
}

// buildLedgerEntries derives one immutable ledger entry per line.
func buildLedgerEntries(txn *domain.Transaction, now time.Time, userID string) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(txn.Lines))
	for i, l := range txn.Lines {
		entry := domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			CompanyID:     txn.CompanyID,
			AccountID:     l.AccountID,
			TransactionID: txn.TransactionID,
			EntryDate:     txn.TransactionDate,
			Department:    l.Department,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if l.Direction == domain.Debit {
			entry.AmountDr = l.Amount
		} else {
			entry.AmountCr = l.Amount
		}
		entries[i] = entry
	}
	return entries
}

// buildReversal constructs the POSTED mirror of a transaction: same lines
// with flipped directions, linked back to the original.
func buildReversal(original *domain.Transaction, reason string, userID string, now time.Time) *domain.Transaction {
	reversing := &domain.Transaction{
		TransactionID:         uuid.NewString(),
		CompanyID:             original.CompanyID,
		Type:                  original.Type,
		Status:                domain.StatusPosted,
		TransactionDate:       now,
		Reference:             original.Reference,
		Description:           fmt.Sprintf("Reversal of %s: %s", original.TransactionID, reason),
		CurrencyCode:          original.CurrencyCode,
		OriginalTransactionID: &original.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	lines := make([]domain.TransactionLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.TransactionLine{
			LineID:        uuid.NewString(),
			TransactionID: reversing.TransactionID,
			AccountID:     l.AccountID,
			Amount:        l.Amount,
			Direction:     l.Direction.Flip(),
			TaxCode:       l.TaxCode,
			Department:    l.Department,
			AuditFields:   reversing.AuditFields,
		}
	}
	reversing.Lines = lines
	return reversing
}
