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

type allocationService struct {
	BaseService
	allocationRepo portsrepo.AllocationRepositoryFacade
	documentRepo   portsrepo.DocumentRepositoryFacade
	txnRepo        portsrepo.TransactionReader
	audit          portssvc.AuditSink
}

// NewAllocationService creates the allocation service.
func NewAllocationService(
	allocationRepo portsrepo.AllocationRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	audit portssvc.AuditSink,
) portssvc.AllocationService {
	return &allocationService{
		allocationRepo: allocationRepo,
		documentRepo:   documentRepo,
		txnRepo:        txnRepo,
		audit:          audit,
	}
}

func (s *allocationService) Allocate(ctx context.Context, companyID string, req dto.AllocateRequest, creatorUserID string) (*domain.Allocation, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("allocation amount must be positive: %w", apperrors.ErrValidation)
	}

	cash, err := s.txnRepo.FindTransactionByID(ctx, companyID, req.CashTransactionID)
	if err != nil {
		return nil, err
	}
	if !cash.Type.IsCashType() {
		return nil, fmt.Errorf("transaction %s is not a payment or receipt: %w", req.CashTransactionID, apperrors.ErrValidation)
	}
	if cash.Status != domain.StatusPosted {
		return nil, fmt.Errorf("cash transaction is %s: %w", cash.Status, apperrors.ErrInvalidState)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, companyID, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.DocPosted {
		return nil, fmt.Errorf("document is %s: %w", doc.Status, apperrors.ErrInvalidState)
	}
	// Early reject against the snapshot. The repository re-checks under the
	// document's row lock, which is the authoritative guard.
	if req.Amount.GreaterThan(doc.Balance()) {
		return nil, apperrors.ErrOverAllocation
	}

	// The cash side has headroom too: allocations out of one payment must
	// not exceed its value. This read is a snapshot; the repository repeats
	// the check under the cash transaction's row lock.
	existing, err := s.allocationRepo.FindAllocationsByCashTransaction(ctx, companyID, req.CashTransactionID)
	if err != nil {
		return nil, err
	}
	spent := decimal.Zero
	for _, a := range existing {
		spent = spent.Add(a.Amount)
	}
	if spent.Add(req.Amount).GreaterThan(cash.CashAmount()) {
		return nil, fmt.Errorf("cash transaction headroom exceeded: %w", apperrors.ErrOverAllocation)
	}

	now := time.Now()
	alloc := domain.Allocation{
		AllocationID:      uuid.NewString(),
		CompanyID:         companyID,
		CashTransactionID: req.CashTransactionID,
		DocumentID:        req.DocumentID,
		Amount:            req.Amount,
		AllocatedAt:       now,
		CreatedBy:         creatorUserID,
	}

	saved, err := s.allocationRepo.Allocate(ctx, &alloc)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate", "document_id", req.DocumentID, "cash_transaction_id", req.CashTransactionID)
		return nil, err
	}

	s.LogInfo(ctx, "Allocation recorded", "allocation_id", saved.AllocationID, "amount", req.Amount.String())
	s.audit.Record(ctx, domain.AuditEvent{
		EventID:    uuid.NewString(),
		CompanyID:  companyID,
		Action:     domain.AuditAllocated,
		EntityID:   req.DocumentID,
		ActorID:    creatorUserID,
		Detail:     fmt.Sprintf("allocated %s from %s", req.Amount.String(), req.CashTransactionID),
		OccurredAt: now,
	})
	return saved, nil
}

func (s *allocationService) RemoveAllocation(ctx context.Context, companyID string, allocationID string, removerUserID string) error {
	if err := s.allocationRepo.RemoveAllocation(ctx, companyID, allocationID); err != nil {
		s.LogError(ctx, err, "Failed to remove allocation", "allocation_id", allocationID)
		return err
	}
	s.LogInfo(ctx, "Allocation removed", "allocation_id", allocationID, "removed_by", removerUserID)
	return nil
}

func (s *allocationService) GetAllocationsByDocument(ctx context.Context, companyID string, documentID string) ([]domain.Allocation, error) {
	return s.allocationRepo.FindAllocationsByDocument(ctx, companyID, documentID)
}

func (s *allocationService) GetAllocationsByCashTransaction(ctx context.Context, companyID string, cashTransactionID string) ([]domain.Allocation, error) {
	return s.allocationRepo.FindAllocationsByCashTransaction(ctx, companyID, cashTransactionID)
}

func (s *allocationService) GetDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
}

func (s *allocationService) ListOpenDocuments(ctx context.Context, companyID string, kind domain.DocumentKind) ([]domain.Document, error) {
	if kind != domain.KindSalesInvoice && kind != domain.KindSupplierBill {
		return nil, fmt.Errorf("unknown document kind %q: %w", kind, apperrors.ErrValidation)
	}
	return s.documentRepo.FindOpenDocuments(ctx, companyID, kind)
}
