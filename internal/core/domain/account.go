package domain

// AccountClassification defines the fundamental accounting type of an account.
type AccountClassification string

const (
	Asset     AccountClassification = "ASSET"
	Liability AccountClassification = "LIABILITY"
	Equity    AccountClassification = "EQUITY"
	Income    AccountClassification = "INCOME"
	Expense   AccountClassification = "EXPENSE"
)

// IsValid reports whether the classification is one of the five known kinds.
func (c AccountClassification) IsValid() bool {
	switch c {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalBalance says which entry side increases an account's balance.
type NormalBalance int

const (
	DebitPositive NormalBalance = iota
	CreditPositive
)

// NormalBalanceFor returns the normal balance side for a classification.
// This is the single sign rule used by balance computation and reporting;
// nothing else switches on classification for sign purposes.
func NormalBalanceFor(c AccountClassification) NormalBalance {
	switch c {
	case Asset, Expense:
		return DebitPositive
	default: // Liability, Equity, Income
		return CreditPositive
	}
}

// Account represents a ledger account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID       string                `json:"accountID"`       // Primary Key (UUID)
	CompanyID       string                `json:"companyID"`       // FK -> companies.company_id, tenant scope (NON-NULL)
	Code            string                `json:"code"`            // Short account code, unique per company
	Name            string                `json:"name"`            // User-defined name
	Classification  AccountClassification `json:"classification"`  // ASSET, LIABILITY, etc.
	CurrencyCode    string                `json:"currencyCode"`    // Company currency; carried, never converted
	ParentAccountID string                `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string                `json:"description"`     // Nullable user description
	IsActive        bool                  `json:"isActive"`        // Soft delete or status flag
	SecurityLevel   int                   `json:"securityLevel"`   // Reports exclude accounts above the caller's level
	AuditFields
}
