package services

import (
	"context"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// PostingSvcFacade is the ledger posting engine contract: all-or-nothing,
// idempotent persistence of balanced posting groups, plus the reversal and
// repair paths.
type PostingSvcFacade interface {
	// Post validates and persists one balanced posting group. Re-posting the
	// same (company, reference, type) returns the existing group unchanged.
	Post(ctx context.Context, companyID string, req dto.CreatePostingRequest, actor domain.Actor) (*domain.PostingGroup, error)

	// Reverse creates the offsetting group for a previously posted reference.
	Reverse(ctx context.Context, companyID, referenceNumber string, actor domain.Actor) (*domain.PostingGroup, error)

	// GetGroupByReference retrieves a posting group with its entries.
	GetGroupByReference(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (*domain.PostingGroup, error)

	// ListGroups retrieves a page of the company's posting groups, newest
	// first, without entries.
	ListGroups(ctx context.Context, companyID string, limit, offset int) ([]domain.PostingGroup, error)

	// ListEntriesByAccount retrieves an account statement page.
	ListEntriesByAccount(ctx context.Context, companyID, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// CorrectEntryAccount repoints a single entry's account snapshot. Audited,
	// only permitted while the entry's financial period is open.
	CorrectEntryAccount(ctx context.Context, companyID, entryID string, req dto.CorrectEntryAccountRequest, actor domain.Actor) (*domain.LedgerEntry, error)
}
