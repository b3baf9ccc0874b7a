package accounting

import (
	"fmt"

	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateBalanced checks that a transaction's lines form a valid double entry:
// at least one line, every amount strictly positive, and debit total equal to
// credit total.
func ValidateBalanced(lines []domain.TransactionLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("transaction has no lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line amount must be positive for line %s", line.LineID)
		}
		if line.Direction == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("lines do not balance: debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}
