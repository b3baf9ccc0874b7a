package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankFeedItemStatus mirrors domain.BankFeedItemStatus at the DB layer.
type BankFeedItemStatus string

// BankFeedItem is the DB shape of an imported bank feed line.
type BankFeedItem struct {
	ItemID               string             `json:"itemID"`
	CompanyID            string             `json:"companyID"`
	BankAccountID        string             `json:"bankAccountID"`
	ImportBatchID        string             `json:"importBatchID"`
	FitID                string             `json:"fitID"`
	PostedDate           time.Time          `json:"postedDate"`
	Amount               decimal.Decimal    `json:"amount"`
	Description          string             `json:"description"`
	Status               BankFeedItemStatus `json:"status"`
	MatchedTransactionID *string            `json:"matchedTransactionID"`
	MatchedRuleID        *string            `json:"matchedRuleID"`
	AuditFields
}

// MatchRule is the DB shape of a reconciliation matching rule.
type MatchRule struct {
	RuleID        string `json:"ruleID"`
	CompanyID     string `json:"companyID"`
	BankAccountID string `json:"bankAccountID"`
	Pattern       string `json:"pattern"`
	AccountID     string `json:"accountID"`
	Priority      int    `json:"priority"`
	IsEnabled     bool   `json:"isEnabled"`
	AuditFields
}
