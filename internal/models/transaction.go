package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors domain.TransactionStatus at the DB layer.
type TransactionStatus string

// TransactionType mirrors domain.TransactionType at the DB layer.
type TransactionType string

// LineDirection mirrors domain.LineDirection at the DB layer.
type LineDirection string

// Transaction is the DB shape of a transaction document header.
type Transaction struct {
	TransactionID          string            `json:"transactionID"`
	CompanyID              string            `json:"companyID"`
	Type                   TransactionType   `json:"type"`
	Status                 TransactionStatus `json:"status"`
	TransactionDate        time.Time         `json:"transactionDate"`
	Reference              string            `json:"reference"`
	Description            string            `json:"description"`
	CurrencyCode           string            `json:"currencyCode"`
	OffsetsDocumentID      string            `json:"offsetsDocumentID"`
	OriginalTransactionID  *string           `json:"originalTransactionID"`
	ReversingTransactionID *string           `json:"reversingTransactionID"`
	VoidReason             string            `json:"voidReason"`
	AuditFields
}

// TransactionLine is the DB shape of a single line item.
type TransactionLine struct {
	LineID        string          `json:"lineID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     LineDirection   `json:"direction"`
	TaxCode       string          `json:"taxCode"`
	Department    string          `json:"department"`
	Notes         string          `json:"notes"`
	AuditFields
}
