package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID      string                `json:"accountID"`
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	Classification AccountClassification `json:"classification"`
	Debit          decimal.Decimal       `json:"debit"`
	Credit         decimal.Decimal       `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report.
type PAndLReport struct {
	Income    []AccountAmount `json:"income"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"` // Total income minus total expenses
}

// BalanceSheetReport represents a balance sheet report.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// AgingBucket is a time-since-due classification for open documents.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// AgingBucketFor classifies a document by days past due as of a reference date.
func AgingBucketFor(dueDate, asOf time.Time) AgingBucket {
	days := int(asOf.Sub(dueDate).Hours() / 24)
	switch {
	case days <= 0:
		return BucketCurrent
	case days <= 30:
		return Bucket1To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingRow is one counterparty's open balances split across aging buckets.
type AgingRow struct {
	CounterpartyName string                          `json:"counterpartyName"`
	Buckets          map[AgingBucket]decimal.Decimal `json:"buckets"`
	Total            decimal.Decimal                 `json:"total"`
}

// AgingReport is an AR or AP aging as of a date.
type AgingReport struct {
	Kind  DocumentKind    `json:"kind"`
	AsOf  time.Time       `json:"asOf"`
	Rows  []AgingRow      `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

// CashflowReport summarizes net movements on cash accounts over a period.
type CashflowReport struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Accounts    []AccountAmount `json:"accounts"`
	NetMovement decimal.Decimal `json:"netMovement"`
}

// BankRegisterLine is a single ledger movement in a bank register.
type BankRegisterLine struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	AmountDr      decimal.Decimal `json:"amountDr"`
	AmountCr      decimal.Decimal `json:"amountCr"`
	RunningTotal  decimal.Decimal `json:"runningTotal"`
}

// BankRegisterReport lists one bank account's movements between two dates.
// Invariant: Opening + total debits - total credits == Closing.
type BankRegisterReport struct {
	AccountID string             `json:"accountID"`
	From      time.Time          `json:"from"`
	To        time.Time          `json:"to"`
	Opening   decimal.Decimal    `json:"opening"`
	Closing   decimal.Decimal    `json:"closing"`
	Lines     []BankRegisterLine `json:"lines"`
}
