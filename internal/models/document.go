package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind mirrors domain.DocumentKind at the DB layer.
type DocumentKind string

// DocumentStatus mirrors domain.DocumentStatus at the DB layer.
type DocumentStatus string

// Document is the DB shape of an allocatable receivable/payable.
type Document struct {
	DocumentID       string          `json:"documentID"`
	CompanyID        string          `json:"companyID"`
	Kind             DocumentKind    `json:"kind"`
	TransactionID    string          `json:"transactionID"`
	CounterpartyName string          `json:"counterpartyName"`
	IssueDate        time.Time       `json:"issueDate"`
	DueDate          time.Time       `json:"dueDate"`
	Total            decimal.Decimal `json:"total"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Status           DocumentStatus  `json:"status"`
	Version          int64           `json:"version"`
	AuditFields
}
