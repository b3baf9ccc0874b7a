package domain_test

import (
	"testing"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mkLine(amount int64, dir domain.LineDirection) domain.TransactionLine {
	return domain.TransactionLine{
		Amount:    decimal.NewFromInt(amount),
		Direction: dir,
	}
}

func TestTransaction_Totals(t *testing.T) {
	txn := domain.Transaction{
		Lines: []domain.TransactionLine{
			mkLine(100, domain.Debit),
			mkLine(15, domain.Debit),
			mkLine(115, domain.Credit),
		},
	}

	assert.True(t, txn.DebitTotal().Equal(decimal.NewFromInt(115)))
	assert.True(t, txn.CreditTotal().Equal(decimal.NewFromInt(115)))
	assert.True(t, txn.IsBalanced())
	assert.True(t, txn.CashAmount().Equal(decimal.NewFromInt(115)))
}

func TestTransaction_IsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.TransactionLine
		want  bool
	}{
		{
			name:  "empty transaction balances trivially",
			lines: nil,
			want:  true,
		},
		{
			name: "matched pair",
			lines: []domain.TransactionLine{
				mkLine(50, domain.Debit),
				mkLine(50, domain.Credit),
			},
			want: true,
		},
		{
			name: "unbalanced",
			lines: []domain.TransactionLine{
				mkLine(50, domain.Debit),
				mkLine(40, domain.Credit),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Lines: tt.lines}
			assert.Equal(t, tt.want, txn.IsBalanced())
		})
	}
}

func TestLineDirection_Flip(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Flip())
	assert.Equal(t, domain.Debit, domain.Credit.Flip())
}

func TestNormalBalanceFor(t *testing.T) {
	assert.Equal(t, domain.DebitPositive, domain.NormalBalanceFor(domain.Asset))
	assert.Equal(t, domain.DebitPositive, domain.NormalBalanceFor(domain.Expense))
	assert.Equal(t, domain.CreditPositive, domain.NormalBalanceFor(domain.Liability))
	assert.Equal(t, domain.CreditPositive, domain.NormalBalanceFor(domain.Equity))
	assert.Equal(t, domain.CreditPositive, domain.NormalBalanceFor(domain.Income))
}

func TestSignedBalance(t *testing.T) {
	raw := decimal.NewFromInt(-115) // credits exceed debits

	// Liabilities display credit balances as positive
	assert.True(t, domain.SignedBalance(raw, domain.Liability).Equal(decimal.NewFromInt(115)))
	// Assets keep the raw sign
	assert.True(t, domain.SignedBalance(raw, domain.Asset).Equal(decimal.NewFromInt(-115)))
}

func TestTransactionType_Kinds(t *testing.T) {
	assert.True(t, domain.TypePayment.IsCashType())
	assert.True(t, domain.TypeReceipt.IsCashType())
	assert.False(t, domain.TypeJournal.IsCashType())

	assert.True(t, domain.TypeSalesInvoice.IsDocumentType())
	assert.True(t, domain.TypeSupplierBill.IsDocumentType())
	assert.False(t, domain.TypePayment.IsDocumentType())

	assert.True(t, domain.TypeCreditNote.IsNoteType())
	assert.True(t, domain.TypeDebitNote.IsNoteType())
	assert.False(t, domain.TypeJournal.IsNoteType())
}
