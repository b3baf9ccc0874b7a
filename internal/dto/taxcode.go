package dto

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest defines the JSON body for creating a tax code.
type CreateTaxCodeRequest struct {
	Code string          `json:"code" binding:"required,max=20"`
	Name string          `json:"name" binding:"required,max=100"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// TaxCodeResponse defines the data returned for a tax code.
type TaxCodeResponse struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Rate     decimal.Decimal `json:"rate"`
	IsActive bool            `json:"isActive"`
}

// ToTaxCodeResponse converts a domain.TaxCode to TaxCodeResponse.
func ToTaxCodeResponse(tc *domain.TaxCode) TaxCodeResponse {
	return TaxCodeResponse{
		Code:     tc.Code,
		Name:     tc.Name,
		Rate:     tc.Rate,
		IsActive: tc.IsActive,
	}
}

// ToTaxCodeResponses converts a slice of domain tax codes.
func ToTaxCodeResponses(codes []domain.TaxCode) []TaxCodeResponse {
	responses := make([]TaxCodeResponse, len(codes))
	for i := range codes {
		responses[i] = ToTaxCodeResponse(&codes[i])
	}
	return responses
}
