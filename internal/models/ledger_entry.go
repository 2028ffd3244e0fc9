package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a ledger entry row is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// LedgerEntry mirrors the ledger_entries table. Rows are append-only except
// for the account-correction repair path, which updates the account snapshot
// columns and the last-updated audit columns in place.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`
	PostingGroupID   string          `json:"postingGroupID"`
	CompanyID        string          `json:"companyID"`
	ReferenceNumber  string          `json:"referenceNumber"`
	TransactionType  string          `json:"transactionType"`
	TransactionName  string          `json:"transactionName"`
	LineNo           int             `json:"lineNo"`
	AccountID        string          `json:"accountID"`
	AccountCode      string          `json:"accountCode"`
	AccountName      string          `json:"accountName"`
	AccountNature    AccountNature   `json:"accountNature"`
	Side             EntrySide       `json:"side"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	EquivalentAmount decimal.Decimal `json:"equivalentAmount"`
	TransactionDate  time.Time       `json:"transactionDate"`
	Description      string          `json:"description"`
	AuditFields
}
