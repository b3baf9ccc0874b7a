package dto

import (
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for creating an account.
type CreateAccountRequest struct {
	Code            string                       `json:"code" binding:"required,max=20"`
	Name            string                       `json:"name" binding:"required,max=100"`
	Classification  domain.AccountClassification `json:"classification" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode    string                       `json:"currencyCode" binding:"required,len=3"`
	ParentAccountID string                       `json:"parentAccountID,omitempty"`
	Description     string                       `json:"description,omitempty"`
	SecurityLevel   int                          `json:"securityLevel" binding:"gte=0,lte=10"`
}

// UpdateAccountRequest defines optional fields for updating an account.
type UpdateAccountRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	SecurityLevel *int    `json:"securityLevel,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string                       `json:"accountID"`
	CompanyID       string                       `json:"companyID"`
	Code            string                       `json:"code"`
	Name            string                       `json:"name"`
	Classification  domain.AccountClassification `json:"classification"`
	CurrencyCode    string                       `json:"currencyCode"`
	ParentAccountID string                       `json:"parentAccountID,omitempty"`
	Description     string                       `json:"description,omitempty"`
	IsActive        bool                         `json:"isActive"`
	SecurityLevel   int                          `json:"securityLevel"`
	CreatedAt       time.Time                    `json:"createdAt"`
}

// AccountBalanceResponse pairs an account with its signed balance as of a date.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		CompanyID:       a.CompanyID,
		Code:            a.Code,
		Name:            a.Name,
		Classification:  a.Classification,
		CurrencyCode:    a.CurrencyCode,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		SecurityLevel:   a.SecurityLevel,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
