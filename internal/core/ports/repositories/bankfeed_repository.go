package repositories

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
)

// BankFeedReader defines read operations for bank feed items and rules.
type BankFeedReader interface {
	// FindFeedItemByID retrieves a feed item by ID within a company.
	FindFeedItemByID(ctx context.Context, companyID string, itemID string) (*domain.BankFeedItem, error)
	// FindFeedItemsByStatus lists feed items for a bank account in a status,
	// posted date ascending.
	FindFeedItemsByStatus(ctx context.Context, companyID string, bankAccountID string, status domain.BankFeedItemStatus) ([]domain.BankFeedItem, error)
	// SummarizeUnmatched aggregates NEW items per bank account.
	SummarizeUnmatched(ctx context.Context, companyID string) ([]domain.UnmatchedFeedSummary, error)
	// FindRulesByCompany lists matching rules, priority descending.
	FindRulesByCompany(ctx context.Context, companyID string) ([]domain.MatchRule, error)
}

// BankFeedWriter defines write operations for bank feed items and rules.
type BankFeedWriter interface {
	// InsertFeedItems inserts an import batch, silently skipping rows whose
	// (import batch, FITID) pair is already present. Returns how many rows
	// were inserted and how many were skipped as duplicates.
	InsertFeedItems(ctx context.Context, items []domain.BankFeedItem) (imported int, skipped int, err error)
	// MarkItemMatched sets MATCHED with the transaction and optional rule link.
	MarkItemMatched(ctx context.Context, companyID string, itemID string, transactionID string, ruleID *string, updatedBy string) error
	// MarkItemIgnored sets IGNORED.
	MarkItemIgnored(ctx context.Context, companyID string, itemID string, updatedBy string) error
	// SaveRule persists a new matching rule.
	SaveRule(ctx context.Context, rule *domain.MatchRule) error
	// SetRuleEnabled toggles a rule.
	SetRuleEnabled(ctx context.Context, companyID string, ruleID string, enabled bool, updatedBy string) error
	// PurgeIgnoredOlderThan deletes IGNORED items older than the cutoff and
	// returns the number removed.
	PurgeIgnoredOlderThan(ctx context.Context, cutoffDays int) (int64, error)
}

// BankFeedRepositoryFacade combines reader and writer for bank feeds.
type BankFeedRepositoryFacade interface {
	BankFeedReader
	BankFeedWriter
}
