package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/dto"
)

// ReconciliationService imports bank feeds and matches them to ledger activity.
type ReconciliationService interface {
	ImportFeed(ctx context.Context, companyID string, req dto.ImportFeedRequest, importerUserID string) (*dto.ImportFeedResponse, error)
	ListFeedItems(ctx context.Context, companyID string, bankAccountID string, status domain.BankFeedItemStatus) ([]domain.BankFeedItem, error)
	SummarizeUnmatched(ctx context.Context, companyID string) ([]domain.UnmatchedFeedSummary, error)
	// MatchItem links a NEW feed item to an existing posted transaction.
	MatchItem(ctx context.Context, companyID string, itemID string, transactionID string, matcherUserID string) error
	IgnoreItem(ctx context.Context, companyID string, itemID string, updaterUserID string) error
	// AutoMatch runs the company's rules over its NEW items. For each item
	// the winning rule posts a balancing transaction against the rule's
	// account and marks the item MATCHED.
	AutoMatch(ctx context.Context, companyID string, bankAccountID string, matcherUserID string) (*dto.AutoMatchResponse, error)
	CreateRule(ctx context.Context, companyID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.MatchRule, error)
	ListRules(ctx context.Context, companyID string) ([]domain.MatchRule, error)
	SetRuleEnabled(ctx context.Context, companyID string, ruleID string, enabled bool, updaterUserID string) error
}
