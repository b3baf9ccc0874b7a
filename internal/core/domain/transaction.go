package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction document.
// DRAFT is the only mutable state; POSTED is reached exactly once; VOID is
// reached only from POSTED and always via a reversing transaction.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
	StatusVoid   TransactionStatus = "VOID"
)

// TransactionType identifies the business document a transaction represents.
type TransactionType string

const (
	TypeJournal      TransactionType = "JOURNAL"
	TypePayment      TransactionType = "PAYMENT"
	TypeReceipt      TransactionType = "RECEIPT"
	TypeSalesInvoice TransactionType = "SALES_INVOICE"
	TypeSupplierBill TransactionType = "SUPPLIER_BILL"
	TypeCreditNote   TransactionType = "CREDIT_NOTE"
	TypeDebitNote    TransactionType = "DEBIT_NOTE"
)

// IsCashType reports whether the transaction type moves cash and can be
// allocated against documents.
func (t TransactionType) IsCashType() bool {
	return t == TypePayment || t == TypeReceipt
}

// IsDocumentType reports whether posting this type creates an allocatable document.
func (t TransactionType) IsDocumentType() bool {
	return t == TypeSalesInvoice || t == TypeSupplierBill
}

// IsNoteType reports whether this type offsets the remaining balance of an
// existing document.
func (t TransactionType) IsNoteType() bool {
	return t == TypeCreditNote || t == TypeDebitNote
}

// LineDirection indicates whether a transaction line is a Debit or a Credit.
type LineDirection string

const (
	Debit  LineDirection = "DEBIT"
	Credit LineDirection = "CREDIT"
)

// Flip returns the opposite direction. Reversals are built entirely from this.
func (d LineDirection) Flip() LineDirection {
	if d == Debit {
		return Credit
	}
	return Debit
}

// TransactionLine is a single line item within a transaction, affecting one account.
type TransactionLine struct {
	LineID        string          `json:"lineID"`        // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction.transactionID (Not Null)
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Direction     LineDirection   `json:"direction"`     // DEBIT or CREDIT (Not Null)
	TaxCode       string          `json:"taxCode"`       // Nullable FK -> tax_codes.code; annotation only
	Department    string          `json:"department"`    // Nullable cost-center tag
	Notes         string          `json:"notes"`         // Nullable
	AuditFields
}

// Transaction represents a business document: an ordered set of balanced lines
// owned exclusively by this header. Once posted it is linked immutably to the
// ledger entries it produced.
type Transaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	CompanyID         string            `json:"companyID"`     // Tenant scope (Not Null)
	Type              TransactionType   `json:"type"`
	Status            TransactionStatus `json:"status"`
	TransactionDate   time.Time         `json:"transactionDate"`
	Reference         string            `json:"reference"`   // Nullable external reference
	Description       string            `json:"description"` // Nullable user description
	CurrencyCode      string            `json:"currencyCode"`
	OffsetsDocumentID string            `json:"offsetsDocumentID"` // Notes only: document whose balance this offsets
	// Reversal linkage. A voided transaction points at its reversal and vice versa.
	OriginalTransactionID  *string           `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string           `json:"reversingTransactionID,omitempty"`
	VoidReason             string            `json:"voidReason,omitempty"`
	Lines                  []TransactionLine `json:"lines,omitempty"`
	AuditFields
}

// DebitTotal sums the DEBIT lines.
func (t *Transaction) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		if l.Direction == Debit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// CreditTotal sums the CREDIT lines.
func (t *Transaction) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		if l.Direction == Credit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// IsBalanced reports whether debit and credit totals match.
func (t *Transaction) IsBalanced() bool {
	return t.DebitTotal().Equal(t.CreditTotal())
}

// CashAmount is the economic value of a cash transaction: the sum of one side
// of a balanced document. Allocation headroom is computed against this.
func (t *Transaction) CashAmount() decimal.Decimal {
	return t.DebitTotal()
}
