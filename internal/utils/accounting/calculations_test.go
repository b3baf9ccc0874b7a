package accounting_test

import (
	"testing"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(amount int64, dir domain.LineDirection) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:    "line-1",
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(amount),
		Direction: dir,
	}
}

func TestValidateBalanced(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.TransactionLine
		wantErr string
	}{
		{
			name:    "empty transaction",
			lines:   nil,
			wantErr: "no lines",
		},
		{
			name: "balanced pair",
			lines: []domain.TransactionLine{
				line(115, domain.Debit),
				line(115, domain.Credit),
			},
		},
		{
			name: "bill with tax splits balances",
			lines: []domain.TransactionLine{
				line(100, domain.Debit),
				line(15, domain.Debit),
				line(115, domain.Credit),
			},
		},
		{
			name: "unbalanced",
			lines: []domain.TransactionLine{
				line(100, domain.Debit),
				line(90, domain.Credit),
			},
			wantErr: "do not balance",
		},
		{
			name: "non-positive amount",
			lines: []domain.TransactionLine{
				line(0, domain.Debit),
				line(0, domain.Credit),
			},
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateBalanced(tt.lines)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
