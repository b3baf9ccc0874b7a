package dto

import (
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocateRequest links a cash transaction to a document by amount.
type AllocateRequest struct {
	CashTransactionID string          `json:"cashTransactionID" binding:"required"`
	DocumentID        string          `json:"documentID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// AllocationResponse defines the data returned for an allocation.
type AllocationResponse struct {
	AllocationID      string          `json:"allocationID"`
	CashTransactionID string          `json:"cashTransactionID"`
	DocumentID        string          `json:"documentID"`
	Amount            decimal.Decimal `json:"amount"`
	AllocatedAt       time.Time       `json:"allocatedAt"`
}

// DocumentResponse defines the data returned for an allocatable document.
type DocumentResponse struct {
	DocumentID       string                `json:"documentID"`
	Kind             domain.DocumentKind   `json:"kind"`
	TransactionID    string                `json:"transactionID,omitempty"`
	CounterpartyName string                `json:"counterpartyName"`
	IssueDate        time.Time             `json:"issueDate"`
	DueDate          time.Time             `json:"dueDate"`
	Total            decimal.Decimal       `json:"total"`
	AmountPaid       decimal.Decimal       `json:"amountPaid"`
	Balance          decimal.Decimal       `json:"balance"`
	Status           domain.DocumentStatus `json:"status"`
}

// ToAllocationResponse converts a domain.Allocation to AllocationResponse.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:      a.AllocationID,
		CashTransactionID: a.CashTransactionID,
		DocumentID:        a.DocumentID,
		Amount:            a.Amount,
		AllocatedAt:       a.AllocatedAt,
	}
}

// ToAllocationResponses converts a slice of domain allocations.
func ToAllocationResponses(allocs []domain.Allocation) []AllocationResponse {
	responses := make([]AllocationResponse, len(allocs))
	for i := range allocs {
		responses[i] = ToAllocationResponse(&allocs[i])
	}
	return responses
}

// ToDocumentResponse converts a domain.Document to DocumentResponse.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       d.DocumentID,
		Kind:             d.Kind,
		TransactionID:    d.TransactionID,
		CounterpartyName: d.CounterpartyName,
		IssueDate:        d.IssueDate,
		DueDate:          d.DueDate,
		Total:            d.Total,
		AmountPaid:       d.AmountPaid,
		Balance:          d.Balance(),
		Status:           d.Status,
	}
}
