package dto

import (
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingLineRequest is one debit/credit intent inside a posting request.
type PostingLineRequest struct {
	AccountID       string           `json:"accountID" binding:"required,uuid"`
	Side            domain.EntrySide `json:"side" binding:"required,entryside"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode    string           `json:"currencyCode" binding:"required,len=3"`
	TransactionDate time.Time        `json:"transactionDate" binding:"required"`
	Description     string           `json:"description"`
}

// CreatePostingRequest carries a business event to the posting engine. The
// company is never part of the payload; it comes from the authenticated actor.
type CreatePostingRequest struct {
	ReferenceNumber string                 `json:"referenceNumber" binding:"required,max=64"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,max=64"`
	TransactionName string                 `json:"transactionName" binding:"max=128"`
	Lines           []PostingLineRequest   `json:"lines" binding:"required,min=1,dive"`
}

// CorrectEntryAccountRequest is the narrow repair path payload: repoint one
// entry's account snapshot while the owning period is still open.
type CorrectEntryAccountRequest struct {
	NewAccountID string `json:"newAccountID" binding:"required,uuid"`
	Reason       string `json:"reason" binding:"required,max=256"`
}

// LedgerEntryResponse is the API representation of one ledger entry.
type LedgerEntryResponse struct {
	EntryID          string          `json:"entryID"`
	PostingGroupID   string          `json:"postingGroupID"`
	ReferenceNumber  string          `json:"referenceNumber"`
	TransactionType  string          `json:"transactionType"`
	TransactionName  string          `json:"transactionName,omitempty"`
	LineNo           int             `json:"lineNo"`
	AccountID        string          `json:"accountID"`
	AccountCode      string          `json:"accountCode"`
	AccountName      string          `json:"accountName"`
	AccountNature    string          `json:"accountNature"`
	Side             string          `json:"side"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	EquivalentAmount decimal.Decimal `json:"equivalentAmount"`
	TransactionDate  time.Time       `json:"transactionDate"`
	Description      string          `json:"description,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// PostingGroupResponse is the API representation of a posting group.
type PostingGroupResponse struct {
	PostingGroupID  string                `json:"postingGroupID"`
	ReferenceNumber string                `json:"referenceNumber"`
	TransactionType string                `json:"transactionType"`
	Entries         []LedgerEntryResponse `json:"entries,omitempty"`
}

// ListEntriesParams holds query parameters for account statement listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain entry to its API representation.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:          e.EntryID,
		PostingGroupID:   e.PostingGroupID,
		ReferenceNumber:  e.ReferenceNumber,
		TransactionType:  string(e.TransactionType),
		TransactionName:  e.TransactionName,
		LineNo:           e.LineNo,
		AccountID:        e.AccountID,
		AccountCode:      e.AccountCode,
		AccountName:      e.AccountName,
		AccountNature:    string(e.AccountNature),
		Side:             string(e.Side),
		Amount:           e.Amount,
		CurrencyCode:     e.CurrencyCode,
		ExchangeRate:     e.ExchangeRate,
		EquivalentAmount: e.EquivalentAmount,
		TransactionDate:  e.TransactionDate,
		Description:      e.Description,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return out
}

// ToPostingGroupResponse converts a domain posting group to its API representation.
func ToPostingGroupResponse(g *domain.PostingGroup) PostingGroupResponse {
	return PostingGroupResponse{
		PostingGroupID:  g.PostingGroupID,
		ReferenceNumber: g.ReferenceNumber,
		TransactionType: string(g.TransactionType),
		Entries:         ToLedgerEntryResponses(g.Entries),
	}
}
