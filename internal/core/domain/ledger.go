package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable debit-or-credit record against one account,
// produced only by posting. Exactly one of AmountDr/AmountCr is nonzero.
// Entries are never updated or deleted; a reversal appends new entries.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`     // Tenant scope
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id
	TransactionID string          `json:"transactionID"` // FK -> transactions.transaction_id
	EntryDate     time.Time       `json:"entryDate"`     // Transaction date, not insertion time
	AmountDr      decimal.Decimal `json:"amountDr"`
	AmountCr      decimal.Decimal `json:"amountCr"`
	Department    string          `json:"department"` // Carried from the source line
	CreatedAt     time.Time       `json:"createdAt"`  // Insertion-order tie-breaker for range queries
	CreatedBy     string          `json:"createdBy"`
}

// Net returns AmountDr - AmountCr, the raw debit-positive movement.
func (e *LedgerEntry) Net() decimal.Decimal {
	return e.AmountDr.Sub(e.AmountCr)
}

// SignedBalance converts a raw debit-minus-credit sum into a display-correct
// balance for the given classification.
func SignedBalance(raw decimal.Decimal, c AccountClassification) decimal.Decimal {
	if NormalBalanceFor(c) == CreditPositive {
		return raw.Neg()
	}
	return raw
}
