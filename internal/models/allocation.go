package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation is the DB shape of a cash-to-document allocation row.
type Allocation struct {
	AllocationID      string          `json:"allocationID"`
	CompanyID         string          `json:"companyID"`
	CashTransactionID string          `json:"cashTransactionID"`
	DocumentID        string          `json:"documentID"`
	Amount            decimal.Decimal `json:"amount"`
	AllocatedAt       time.Time       `json:"allocatedAt"`
	CreatedBy         string          `json:"createdBy"`
}
