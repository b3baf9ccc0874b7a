package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation links one cash transaction to one document it pays down.
// At most one allocation exists per (cash transaction, document) pair;
// re-applying the same pair is rejected, not duplicated. Corrections zero the
// amount rather than deleting the row.
type Allocation struct {
	AllocationID      string          `json:"allocationID"` // Primary Key (UUID)
	CompanyID         string          `json:"companyID"`
	CashTransactionID string          `json:"cashTransactionID"` // FK -> transactions.transaction_id
	DocumentID        string          `json:"documentID"`        // FK -> documents.document_id
	Amount            decimal.Decimal `json:"amount"`
	AllocatedAt       time.Time       `json:"allocatedAt"`
	CreatedBy         string          `json:"createdBy"`
}
