package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BankFeedItemStatus tracks the reconciliation state of an imported feed line.
type BankFeedItemStatus string

const (
	FeedNew     BankFeedItemStatus = "NEW"
	FeedMatched BankFeedItemStatus = "MATCHED"
	FeedIgnored BankFeedItemStatus = "IGNORED"
)

// BankFeedItem is a pre-parsed cash movement imported from a bank feed.
// Items are deduplicated by (ImportBatchID, FitID) so re-running an import is safe.
type BankFeedItem struct {
	ItemID        string             `json:"itemID"` // Primary Key (UUID)
	CompanyID     string             `json:"companyID"`
	BankAccountID string             `json:"bankAccountID"` // FK -> accounts.account_id (a cash asset account)
	ImportBatchID string             `json:"importBatchID"`
	FitID         string             `json:"fitID"` // External financial-institution transaction identifier
	PostedDate    time.Time          `json:"postedDate"`
	Amount        decimal.Decimal    `json:"amount"` // Signed: positive inflow, negative outflow
	Description   string             `json:"description"`
	Status        BankFeedItemStatus `json:"status"`
	// Set when the item is matched.
	MatchedTransactionID *string `json:"matchedTransactionID,omitempty"`
	MatchedRuleID        *string `json:"matchedRuleID,omitempty"`
	AuditFields
}

// UnmatchedFeedSummary aggregates the NEW items outstanding per bank account.
type UnmatchedFeedSummary struct {
	BankAccountID string          `json:"bankAccountID"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OldestPosted  *time.Time      `json:"oldestPosted,omitempty"`
}

// MatchRule classifies feed items by description pattern. Rules are data, not
// code: the matcher evaluates enabled rules in descending priority and the
// first hit wins.
type MatchRule struct {
	RuleID        string `json:"ruleID"` // Primary Key (UUID)
	CompanyID     string `json:"companyID"`
	BankAccountID string `json:"bankAccountID"` // Optional scope; empty means any bank account
	Pattern       string `json:"pattern"`       // Case-insensitive substring on item description
	AccountID     string `json:"accountID"`     // Counter account the rule classifies the movement to
	Priority      int    `json:"priority"`
	IsEnabled     bool   `json:"isEnabled"`
	AuditFields
}

// Matches reports whether the rule applies to the item.
func (r *MatchRule) Matches(item BankFeedItem) bool {
	if !r.IsEnabled {
		return false
	}
	if r.BankAccountID != "" && r.BankAccountID != item.BankAccountID {
		return false
	}
	if r.Pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(item.Description), strings.ToLower(r.Pattern))
}

// EvaluateMatchRules is a pure function over (item, rule list): it returns the
// first enabled rule that matches, scanning in descending priority order.
// Equal priorities tie-break on rule ID for determinism.
func EvaluateMatchRules(item BankFeedItem, rules []MatchRule) *MatchRule {
	best := -1
	for i, r := range rules {
		if !r.Matches(item) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if r.Priority > rules[best].Priority ||
			(r.Priority == rules[best].Priority && r.RuleID < rules[best].RuleID) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	rule := rules[best]
	return &rule
}
