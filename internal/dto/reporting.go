package dto

import (
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account row of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Nature      string          `json:"nature"`
	Category    string          `json:"category"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

// TrialBalanceResponse is the full trial balance as of a date. A healthy
// ledger reports equal debit and credit totals.
type TrialBalanceResponse struct {
	AsOf        time.Time                 `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// ToTrialBalanceResponse converts domain rows into the report payload.
func ToTrialBalanceResponse(asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:        asOf,
		Rows:        make([]TrialBalanceRowResponse, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i, r := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			Nature:      string(r.Nature),
			Category:    string(r.Category),
			TotalDebit:  r.TotalDebit,
			TotalCredit: r.TotalCredit,
			NetBalance:  r.NetBalance(),
		}
		resp.TotalDebit = resp.TotalDebit.Add(r.TotalDebit)
		resp.TotalCredit = resp.TotalCredit.Add(r.TotalCredit)
	}
	return resp
}
