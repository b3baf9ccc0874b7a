package services

import (
	"context"
	"errors"
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

type reconciliationService struct {
	BaseService
	bankFeedRepo portsrepo.BankFeedRepositoryFacade
	accountRepo  portsrepo.AccountReader
	txnRepo      portsrepo.TransactionReader
	posting      portssvc.PostingService
	audit        portssvc.AuditSink
}

// NewReconciliationService creates the bank feed import and matching service.
func NewReconciliationService(
	bankFeedRepo portsrepo.BankFeedRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	txnRepo portsrepo.TransactionReader,
	posting portssvc.PostingService,
	audit portssvc.AuditSink,
) portssvc.ReconciliationService {
	return &reconciliationService{
		bankFeedRepo: bankFeedRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		posting:      posting,
		audit:        audit,
	}
}

func (s *reconciliationService) ImportFeed(ctx context.Context, companyID string, req dto.ImportFeedRequest, importerUserID string) (*dto.ImportFeedResponse, error) {
	bankAccount, err := s.accountRepo.FindAccountByID(ctx, companyID, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.Classification != domain.Asset {
		return nil, fmt.Errorf("bank account must be an asset account: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	items := make([]domain.BankFeedItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.BankFeedItem{
			ItemID:        uuid.NewString(),
			CompanyID:     companyID,
			BankAccountID: req.BankAccountID,
			ImportBatchID: req.ImportBatchID,
			FitID:         it.FitID,
			PostedDate:    it.PostedDate,
			Amount:        it.Amount,
			Description:   it.Description,
			Status:        domain.FeedNew,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     importerUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: importerUserID,
			},
		}
	}

	imported, skipped, err := s.bankFeedRepo.InsertFeedItems(ctx, items)
	if err != nil {
		s.LogError(ctx, err, "Failed to import feed batch", "import_batch_id", req.ImportBatchID)
		return nil, err
	}

	s.LogInfo(ctx, "Feed batch imported",
		"import_batch_id", req.ImportBatchID,
		"imported", imported,
		"skipped", skipped,
	)
	s.audit.Record(ctx, domain.AuditEvent{
		EventID:    uuid.NewString(),
		CompanyID:  companyID,
		Action:     domain.AuditImported,
		EntityID:   req.ImportBatchID,
		ActorID:    importerUserID,
		Detail:     fmt.Sprintf("imported %d items, skipped %d duplicates", imported, skipped),
		OccurredAt: now,
	})
	return &dto.ImportFeedResponse{Imported: imported, Skipped: skipped}, nil
}

func (s *reconciliationService) ListFeedItems(ctx context.Context, companyID string, bankAccountID string, status domain.BankFeedItemStatus) ([]domain.BankFeedItem, error) {
	return s.bankFeedRepo.FindFeedItemsByStatus(ctx, companyID, bankAccountID, status)
}

func (s *reconciliationService) SummarizeUnmatched(ctx context.Context, companyID string) ([]domain.UnmatchedFeedSummary, error) {
	return s.bankFeedRepo.SummarizeUnmatched(ctx, companyID)
}

func (s *reconciliationService) MatchItem(ctx context.Context, companyID string, itemID string, transactionID string, matcherUserID string) error {
	item, err := s.bankFeedRepo.FindFeedItemByID(ctx, companyID, itemID)
	if err != nil {
		return err
	}
	if item.Status != domain.FeedNew {
		return fmt.Errorf("feed item is %s: %w", item.Status, apperrors.ErrInvalidState)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, companyID, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.StatusPosted {
		return fmt.Errorf("matched transaction must be posted: %w", apperrors.ErrInvalidState)
	}

	if err := s.bankFeedRepo.MarkItemMatched(ctx, companyID, itemID, transactionID, nil, matcherUserID); err != nil {
		s.LogError(ctx, err, "Failed to match feed item", "item_id", itemID)
		return err
	}

	s.LogInfo(ctx, "Feed item matched", "item_id", itemID, "transaction_id", transactionID)
	s.audit.Record(ctx, domain.AuditEvent{
		EventID:    uuid.NewString(),
		CompanyID:  companyID,
		Action:     domain.AuditMatched,
		EntityID:   itemID,
		ActorID:    matcherUserID,
		Detail:     fmt.Sprintf("matched to transaction %s", transactionID),
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *reconciliationService) IgnoreItem(ctx context.Context, companyID string, itemID string, updaterUserID string) error {
	item, err := s.bankFeedRepo.FindFeedItemByID(ctx, companyID, itemID)
	if err != nil {
		return err
	}
	if item.Status != domain.FeedNew {
		return fmt.Errorf("feed item is %s: %w", item.Status, apperrors.ErrInvalidState)
	}
	return s.bankFeedRepo.MarkItemIgnored(ctx, companyID, itemID, updaterUserID)
}

// matchWindowDays bounds how far a posted transaction's date may drift from
// the feed item's posted date and still count as an exact match.
const matchWindowDays = 3

// AutoMatch walks the NEW items of a bank account in two steps. First an
// exact match: a posted, still-unmatched cash transaction with the same
// amount on the bank account within a few days of the item's date. Failing
// that, the company's rules; a winning rule posts a balancing transaction
// between the bank account and the rule's account. Either way the item is
// marked MATCHED.
func (s *reconciliationService) AutoMatch(ctx context.Context, companyID string, bankAccountID string, matcherUserID string) (*dto.AutoMatchResponse, error) {
	items, err := s.bankFeedRepo.FindFeedItemsByStatus(ctx, companyID, bankAccountID, domain.FeedNew)
	if err != nil {
		return nil, err
	}
	rules, err := s.bankFeedRepo.FindRulesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AutoMatchResponse{Examined: len(items)}
	for i := range items {
		item := &items[i]

		amount, direction := feedEconomics(item.Amount)
		candidate, err := s.txnRepo.FindMatchCandidate(ctx, companyID, bankAccountID, amount, direction,
			item.PostedDate.AddDate(0, 0, -matchWindowDays),
			item.PostedDate.AddDate(0, 0, matchWindowDays),
		)
		switch {
		case err == nil:
			if err := s.bankFeedRepo.MarkItemMatched(ctx, companyID, item.ItemID, candidate.TransactionID, nil, matcherUserID); err != nil {
				s.LogError(ctx, err, "Failed to mark exact-matched item", "item_id", item.ItemID)
				continue
			}
			resp.Matched++
			continue
		case !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Exact-match lookup failed", "item_id", item.ItemID)
			continue
		}

		rule := domain.EvaluateMatchRules(*item, rules)
		if rule == nil {
			continue
		}

		txn, err := s.postForMatch(ctx, companyID, item, rule, matcherUserID)
		if err != nil {
			// One bad item should not sink the whole pass.
			s.LogError(ctx, err, "Auto-match posting failed", "item_id", item.ItemID, "rule_id", rule.RuleID)
			continue
		}

		if err := s.bankFeedRepo.MarkItemMatched(ctx, companyID, item.ItemID, txn.TransactionID, &rule.RuleID, matcherUserID); err != nil {
			s.LogError(ctx, err, "Failed to mark auto-matched item", "item_id", item.ItemID)
			continue
		}
		resp.Matched++
	}

	s.LogInfo(ctx, "Auto-match pass finished", "examined", resp.Examined, "matched", resp.Matched)
	return resp, nil
}

// postForMatch creates and posts the two-line transaction a rule implies.
// Positive feed amounts are money into the bank account, negative out.
func (s *reconciliationService) postForMatch(ctx context.Context, companyID string, item *domain.BankFeedItem, rule *domain.MatchRule, matcherUserID string) (*domain.Transaction, error) {
	bankAccount, err := s.accountRepo.FindAccountByID(ctx, companyID, item.BankAccountID)
	if err != nil {
		return nil, err
	}

	amount, bankDirection := feedEconomics(item.Amount)
	txnType := domain.TypeReceipt
	if bankDirection == domain.Credit {
		txnType = domain.TypePayment
	}

	req := dto.CreateTransactionRequest{
		Type:            txnType,
		TransactionDate: item.PostedDate,
		Reference:       item.FitID,
		Description:     item.Description,
		CurrencyCode:    bankAccount.CurrencyCode,
		Lines: []dto.TransactionLineRequest{
			{AccountID: item.BankAccountID, Amount: amount, Direction: bankDirection},
			{AccountID: rule.AccountID, Amount: amount, Direction: bankDirection.Flip()},
		},
	}

	draft, err := s.posting.CreateDraft(ctx, companyID, req, matcherUserID)
	if err != nil {
		return nil, err
	}
	return s.posting.Post(ctx, companyID, draft.TransactionID, matcherUserID)
}

// feedEconomics normalizes a signed feed amount to a positive value and the
// bank-side direction it implies. Money in debits the bank account.
func feedEconomics(amount decimal.Decimal) (decimal.Decimal, domain.LineDirection) {
	if amount.LessThan(decimal.Zero) {
		return amount.Neg(), domain.Credit
	}
	return amount, domain.Debit
}

func (s *reconciliationService) CreateRule(ctx context.Context, companyID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.MatchRule, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, companyID, req.AccountID); err != nil {
		return nil, err
	}
	if req.BankAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, companyID, req.BankAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	rule := domain.MatchRule{
		RuleID:        uuid.NewString(),
		CompanyID:     companyID,
		BankAccountID: req.BankAccountID,
		Pattern:       req.Pattern,
		AccountID:     req.AccountID,
		Priority:      req.Priority,
		IsEnabled:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bankFeedRepo.SaveRule(ctx, &rule); err != nil {
		s.LogError(ctx, err, "Failed to save rule", "pattern", req.Pattern)
		return nil, err
	}

	s.LogInfo(ctx, "Match rule created", "rule_id", rule.RuleID, "priority", rule.Priority)
	return &rule, nil
}

func (s *reconciliationService) ListRules(ctx context.Context, companyID string) ([]domain.MatchRule, error) {
	return s.bankFeedRepo.FindRulesByCompany(ctx, companyID)
}

func (s *reconciliationService) SetRuleEnabled(ctx context.Context, companyID string, ruleID string, enabled bool, updaterUserID string) error {
	return s.bankFeedRepo.SetRuleEnabled(ctx, companyID, ruleID, enabled, updaterUserID)
}
