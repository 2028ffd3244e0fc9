package accounting

import (
	"fmt"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EquivalentScale is the fixed scale of base-currency equivalent amounts,
// matching the numeric(24,4) equivalent columns.
const EquivalentScale = 4

// EquivalentAmount converts an original-currency amount to the base currency
// using the resolved rate, rounded half-up to the equivalent scale.
func EquivalentAmount(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(EquivalentScale)
}

// SumEquivalents returns the debit and credit totals of a group's entries,
// in base-currency equivalents.
func SumEquivalents(entries []domain.LedgerEntry) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		if e.Side == domain.Debit {
			debits = debits.Add(e.EquivalentAmount)
		} else {
			credits = credits.Add(e.EquivalentAmount)
		}
	}
	return debits, credits
}

// ValidateGroupBalance checks the core posting invariant: every amount is
// positive and debit equivalents equal credit equivalents exactly. Decimal
// arithmetic keeps the comparison free of binary floating point noise.
func ValidateGroupBalance(entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("posting group must contain at least one entry")
	}

	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("entry amount must be positive for account %s (line %d)", e.AccountID, e.LineNo)
		}
	}

	debits, credits := SumEquivalents(entries)
	if !debits.Equal(credits) {
		return fmt.Errorf("posting group does not balance: debit equivalents %s, credit equivalents %s",
			debits.String(), credits.String())
	}

	return nil
}

// SignedAmount applies the account-nature convention to an entry's equivalent
// amount: entries on the account's normal side increase the balance, entries
// on the opposite side decrease it. Used by statement and reporting views.
func SignedAmount(entry domain.LedgerEntry) (decimal.Decimal, error) {
	switch entry.AccountNature {
	case domain.DebitNormal:
		if entry.Side == domain.Debit {
			return entry.EquivalentAmount, nil
		}
		return entry.EquivalentAmount.Neg(), nil
	case domain.CreditNormal:
		if entry.Side == domain.Credit {
			return entry.EquivalentAmount, nil
		}
		return entry.EquivalentAmount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account nature '%s' for account %s", entry.AccountNature, entry.AccountID)
	}
}
