package models

// AccountClassification mirrors domain.AccountClassification at the DB layer.
type AccountClassification string

// Account is the DB shape of a ledger account.
type Account struct {
	AccountID       string                `json:"accountID"`
	CompanyID       string                `json:"companyID"`
	Code            string                `json:"code"`
	Name            string                `json:"name"`
	Classification  AccountClassification `json:"classification"`
	CurrencyCode    string                `json:"currencyCode"`
	ParentAccountID string                `json:"parentAccountID"`
	Description     string                `json:"description"`
	IsActive        bool                  `json:"isActive"`
	SecurityLevel   int                   `json:"securityLevel"`
	AuditFields
}
