package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow represents one account's aggregated position in a trial balance.
// Amounts are base-currency equivalents, aggregated by reference number groups.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Nature      AccountNature   `json:"nature"`
	Category    AccountCategory `json:"category"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// NetBalance returns the account's balance on its normal side: debits minus
// credits for debit-normal accounts, credits minus debits otherwise.
func (r TrialBalanceRow) NetBalance() decimal.Decimal {
	if r.Nature == DebitNormal {
		return r.TotalDebit.Sub(r.TotalCredit)
	}
	return r.TotalCredit.Sub(r.TotalDebit)
}
