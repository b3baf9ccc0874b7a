package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes receivable from payable documents.
type DocumentKind string

const (
	KindSalesInvoice DocumentKind = "SALES_INVOICE"
	KindSupplierBill DocumentKind = "SUPPLIER_BILL"
)

// DocumentStatus mirrors the owning transaction's lifecycle.
type DocumentStatus string

const (
	DocDraft  DocumentStatus = "DRAFT"
	DocPosted DocumentStatus = "POSTED"
	DocVoid   DocumentStatus = "VOID"
)

// Document is an allocatable receivable/payable. AmountPaid is a cached
// aggregate of its allocation rows; it is only ever written after re-deriving
// from those rows under the document's row lock, and Version guards against a
// stale overwrite.
type Document struct {
	DocumentID       string          `json:"documentID"` // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`
	Kind             DocumentKind    `json:"kind"`
	TransactionID    string          `json:"transactionID"` // Posting link; set when the source transaction posts
	CounterpartyName string          `json:"counterpartyName"`
	IssueDate        time.Time       `json:"issueDate"`
	DueDate          time.Time       `json:"dueDate"`
	Total            decimal.Decimal `json:"total"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Status           DocumentStatus  `json:"status"`
	Version          int64           `json:"version"`
	AuditFields
}

// Balance is the open amount still to be allocated.
func (d *Document) Balance() decimal.Decimal {
	return d.Total.Sub(d.AmountPaid)
}

// NoteOffset describes a credit or debit note applying against a document's
// remaining balance at post time. The amount is validated again under the
// document's row lock before it is applied.
type NoteOffset struct {
	DocumentID string
	Amount     decimal.Decimal
}
