package dto

import (
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeedItemRequest is one pre-parsed bank feed line in an import batch.
type FeedItemRequest struct {
	FitID       string          `json:"fitID" binding:"required"`
	PostedDate  time.Time       `json:"postedDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description,omitempty"`
}

// ImportFeedRequest defines the JSON body for importing a feed batch.
type ImportFeedRequest struct {
	BankAccountID string            `json:"bankAccountID" binding:"required"`
	ImportBatchID string            `json:"importBatchID" binding:"required"`
	Items         []FeedItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ImportFeedResponse reports how an import batch was absorbed.
type ImportFeedResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"` // Duplicates of already-present (batch, fitID) pairs
}

// MatchItemRequest links a feed item to an existing posted transaction.
type MatchItemRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
}

// FeedItemResponse defines the data returned for a bank feed item.
type FeedItemResponse struct {
	ItemID               string                    `json:"itemID"`
	BankAccountID        string                    `json:"bankAccountID"`
	ImportBatchID        string                    `json:"importBatchID"`
	FitID                string                    `json:"fitID"`
	PostedDate           time.Time                 `json:"postedDate"`
	Amount               decimal.Decimal           `json:"amount"`
	Description          string                    `json:"description,omitempty"`
	Status               domain.BankFeedItemStatus `json:"status"`
	MatchedTransactionID *string                   `json:"matchedTransactionID,omitempty"`
	MatchedRuleID        *string                   `json:"matchedRuleID,omitempty"`
}

// CreateRuleRequest defines the JSON body for creating a matching rule.
type CreateRuleRequest struct {
	BankAccountID string `json:"bankAccountID,omitempty"`
	Pattern       string `json:"pattern" binding:"required,max=200"`
	AccountID     string `json:"accountID" binding:"required"`
	Priority      int    `json:"priority" binding:"gte=0"`
}

// SetRuleEnabledRequest toggles a matching rule on or off.
type SetRuleEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// RuleResponse defines the data returned for a matching rule.
type RuleResponse struct {
	RuleID        string `json:"ruleID"`
	BankAccountID string `json:"bankAccountID,omitempty"`
	Pattern       string `json:"pattern"`
	AccountID     string `json:"accountID"`
	Priority      int    `json:"priority"`
	IsEnabled     bool   `json:"isEnabled"`
}

// AutoMatchResponse reports the outcome of an auto-match pass.
type AutoMatchResponse struct {
	Examined int `json:"examined"`
	Matched  int `json:"matched"`
}

// ToFeedItemResponse converts a domain.BankFeedItem to FeedItemResponse.
func ToFeedItemResponse(item *domain.BankFeedItem) FeedItemResponse {
	return FeedItemResponse{
		ItemID:               item.ItemID,
		BankAccountID:        item.BankAccountID,
		ImportBatchID:        item.ImportBatchID,
		FitID:                item.FitID,
		PostedDate:           item.PostedDate,
		Amount:               item.Amount,
		Description:          item.Description,
		Status:               item.Status,
		MatchedTransactionID: item.MatchedTransactionID,
		MatchedRuleID:        item.MatchedRuleID,
	}
}

// ToFeedItemResponses converts a slice of domain feed items.
func ToFeedItemResponses(items []domain.BankFeedItem) []FeedItemResponse {
	responses := make([]FeedItemResponse, len(items))
	for i := range items {
		responses[i] = ToFeedItemResponse(&items[i])
	}
	return responses
}

// ToRuleResponse converts a domain.MatchRule to RuleResponse.
func ToRuleResponse(r *domain.MatchRule) RuleResponse {
	return RuleResponse{
		RuleID:        r.RuleID,
		BankAccountID: r.BankAccountID,
		Pattern:       r.Pattern,
		AccountID:     r.AccountID,
		Priority:      r.Priority,
		IsEnabled:     r.IsEnabled,
	}
}

// ToRuleResponses converts a slice of domain rules.
func ToRuleResponses(rules []domain.MatchRule) []RuleResponse {
	responses := make([]RuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRuleResponse(&rules[i])
	}
	return responses
}
