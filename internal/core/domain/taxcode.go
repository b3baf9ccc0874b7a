package domain

import "github.com/shopspring/decimal"

// TaxCode is a flat-rate code used to annotate transaction lines.
// Rates are pre-applied by callers; the ledger never computes tax.
type TaxCode struct {
	Code      string          `json:"code"` // Primary Key together with CompanyID
	CompanyID string          `json:"companyID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"` // Flat percentage, e.g. 15 for 15%
	IsActive  bool            `json:"isActive"`
	AuditFields
}
