package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the DB shape of an immutable ledger entry row.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	CompanyID     string          `json:"companyID"`
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID"`
	EntryDate     time.Time       `json:"entryDate"`
	AmountDr      decimal.Decimal `json:"amountDr"`
	AmountCr      decimal.Decimal `json:"amountCr"`
	Department    string          `json:"department"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
