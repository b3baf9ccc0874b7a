package dto

import (
	"time"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionLineRequest is one line of a draft transaction.
type TransactionLineRequest struct {
	AccountID  string               `json:"accountID" binding:"required"`
	Amount     decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Direction  domain.LineDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	TaxCode    string               `json:"taxCode,omitempty"`
	Department string               `json:"department,omitempty"`
	Notes      string               `json:"notes,omitempty"`
}

// DocumentDetails carries the allocatable-document fields for invoice/bill drafts.
type DocumentDetails struct {
	CounterpartyName string    `json:"counterpartyName" binding:"required,max=200"`
	IssueDate        time.Time `json:"issueDate" binding:"required"`
	DueDate          time.Time `json:"dueDate" binding:"required"`
}

// CreateTransactionRequest defines the JSON body for creating a draft transaction.
type CreateTransactionRequest struct {
	Type              domain.TransactionType   `json:"type" binding:"required,oneof=JOURNAL PAYMENT RECEIPT SALES_INVOICE SUPPLIER_BILL CREDIT_NOTE DEBIT_NOTE"`
	TransactionDate   time.Time                `json:"transactionDate" binding:"required"`
	Reference         string                   `json:"reference,omitempty"`
	Description       string                   `json:"description" binding:"required"`
	CurrencyCode      string                   `json:"currencyCode" binding:"required,len=3"`
	OffsetsDocumentID string                   `json:"offsetsDocumentID,omitempty"`
	Document          *DocumentDetails         `json:"document,omitempty"`
	Lines             []TransactionLineRequest `json:"lines" binding:"omitempty,dive"`
}

// UpdateDraftRequest replaces the mutable fields of a DRAFT transaction.
// Lines, when present, replace the existing line set wholesale.
type UpdateDraftRequest struct {
	TransactionDate *time.Time               `json:"transactionDate,omitempty"`
	Reference       *string                  `json:"reference,omitempty"`
	Description     *string                  `json:"description,omitempty"`
	Lines           []TransactionLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
}

// VoidTransactionRequest carries the reason for voiding a posted transaction.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// TransactionLineResponse defines the data returned for a line.
type TransactionLineResponse struct {
	LineID     string               `json:"lineID"`
	AccountID  string               `json:"accountID"`
	Amount     decimal.Decimal      `json:"amount"`
	Direction  domain.LineDirection `json:"direction"`
	TaxCode    string               `json:"taxCode,omitempty"`
	Department string               `json:"department,omitempty"`
	Notes      string               `json:"notes,omitempty"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID          string                    `json:"transactionID"`
	Type                   domain.TransactionType    `json:"type"`
	Status                 domain.TransactionStatus  `json:"status"`
	TransactionDate        time.Time                 `json:"transactionDate"`
	Reference              string                    `json:"reference,omitempty"`
	Description            string                    `json:"description,omitempty"`
	CurrencyCode           string                    `json:"currencyCode"`
	OffsetsDocumentID      string                    `json:"offsetsDocumentID,omitempty"`
	OriginalTransactionID  *string                   `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string                   `json:"reversingTransactionID,omitempty"`
	VoidReason             string                    `json:"voidReason,omitempty"`
	Lines                  []TransactionLineResponse `json:"lines,omitempty"`
	CreatedAt              time.Time                 `json:"createdAt"`
	CreatedBy              string                    `json:"createdBy"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionLineResponse converts a domain line to its response DTO.
func ToTransactionLineResponse(l *domain.TransactionLine) TransactionLineResponse {
	return TransactionLineResponse{
		LineID:     l.LineID,
		AccountID:  l.AccountID,
		Amount:     l.Amount,
		Direction:  l.Direction,
		TaxCode:    l.TaxCode,
		Department: l.Department,
		Notes:      l.Notes,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	lines := make([]TransactionLineResponse, len(t.Lines))
	for i := range t.Lines {
		lines[i] = ToTransactionLineResponse(&t.Lines[i])
	}
	return TransactionResponse{
		TransactionID:          t.TransactionID,
		Type:                   t.Type,
		Status:                 t.Status,
		TransactionDate:        t.TransactionDate,
		Reference:              t.Reference,
		Description:            t.Description,
		CurrencyCode:           t.CurrencyCode,
		OffsetsDocumentID:      t.OffsetsDocumentID,
		OriginalTransactionID:  t.OriginalTransactionID,
		ReversingTransactionID: t.ReversingTransactionID,
		VoidReason:             t.VoidReason,
		Lines:                  lines,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
