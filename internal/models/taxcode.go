package models

import "github.com/shopspring/decimal"

// TaxCode is the DB shape of a flat-rate tax code.
type TaxCode struct {
	Code      string          `json:"code"`
	CompanyID string          `json:"companyID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}
