package repositories

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries and posting groups.
type LedgerReader interface {
	// FindGroupByReference retrieves the posting group for a company,
	// reference number and transaction type, entries included. Returns
	// apperrors.ErrNotFound when no entries exist for that key.
	FindGroupByReference(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (*domain.PostingGroup, error)

	// FindEntriesByReference retrieves all entries of a company sharing the
	// reference number, across transaction types, ordered by line number.
	FindEntriesByReference(ctx context.Context, companyID, referenceNumber string) ([]domain.LedgerEntry, error)

	// FindEntryByID retrieves a single ledger entry within the given company.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries for one
	// account using token-based pagination. It returns the entries, a token
	// for the next page, and an error.
	ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListGroups retrieves a page of a company's posting groups, newest
	// first, without their entries.
	ListGroups(ctx context.Context, companyID string, limit, offset int) ([]domain.PostingGroup, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SavePostingGroup persists all entries of a posting group inside one
	// database transaction. The financial period is re-validated inside that
	// transaction, and a concurrent insert of the same (company, reference,
	// type) resolves to the already-persisted group ID, which is returned.
	// No partial group is ever observable.
	SavePostingGroup(ctx context.Context, group domain.PostingGroup) (string, error)

	// CorrectEntryAccount rewrites a single entry's account snapshot in place.
	// This is the one documented repair path for entries posted against the
	// wrong account; it never touches amounts, sides or dates.
	CorrectEntryAccount(ctx context.Context, companyID, entryID string, account domain.Account, updatedBy string, updatedAt time.Time) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
