package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a ledger entry is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Opposite returns the mirrored side, used when building reversal entries.
func (s EntrySide) Opposite() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// TransactionType names the business event a posting group records.
type TransactionType string

const (
	SalesInvoice    TransactionType = "SALES_INVOICE"
	PurchaseInvoice TransactionType = "PURCHASE_INVOICE"
	InvoicePayment  TransactionType = "INVOICE_PAYMENT"
	StockAdjustment TransactionType = "STOCK_ADJUSTMENT"
	ManualJournal   TransactionType = "MANUAL_JOURNAL"
)

// ReversalSuffix marks transaction types generated by the reversal handler.
const ReversalSuffix = "_REVERSAL"

// ReversalReferenceSuffix is appended to the original reference number to
// derive the reversal group's reference.
const ReversalReferenceSuffix = "-REV"

// Reversal derives the transaction type used for offsetting entries.
func (t TransactionType) Reversal() TransactionType {
	return t + ReversalSuffix
}

// IsReversal reports whether the type was produced by the reversal handler.
func (t TransactionType) IsReversal() bool {
	return strings.HasSuffix(string(t), ReversalSuffix)
}

// LedgerEntry is the atomic unit of the general ledger. Entries are immutable
// after creation; the only exception is the audited account-correction path,
// permitted while the entry's financial period remains open.
//
// Account code, name and nature are snapshotted at posting time so later
// renames never rewrite history.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`        // Primary Key (UUID)
	PostingGroupID   string          `json:"postingGroupID"` // Shared by all entries of one business event
	CompanyID        string          `json:"companyID"`      // FK -> companies.company_id
	ReferenceNumber  string          `json:"referenceNumber"`
	TransactionType  TransactionType `json:"transactionType"`
	TransactionName  string          `json:"transactionName"` // Human-readable event name
	LineNo           int             `json:"lineNo"`          // 1-based position within the group
	AccountID        string          `json:"accountID"`
	AccountCode      string          `json:"accountCode"` // Snapshot at posting time
	AccountName      string          `json:"accountName"` // Snapshot at posting time
	AccountNature    AccountNature   `json:"accountNature"`
	Side             EntrySide       `json:"side"`
	Amount           decimal.Decimal `json:"amount"` // Positive, original currency
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`     // Rate used for the equivalent
	EquivalentAmount decimal.Decimal `json:"equivalentAmount"` // Amount in the company's base currency
	TransactionDate  time.Time       `json:"transactionDate"`
	Description      string          `json:"description"`
	AuditFields
}

// PostingGroup is the set of ledger entries sharing one reference number for
// one company. Every group balances: the sum of debit equivalents equals the
// sum of credit equivalents.
type PostingGroup struct {
	PostingGroupID  string          `json:"postingGroupID"`
	CompanyID       string          `json:"companyID"`
	ReferenceNumber string          `json:"referenceNumber"`
	TransactionType TransactionType `json:"transactionType"`
	Entries         []LedgerEntry   `json:"entries,omitempty"`
}
