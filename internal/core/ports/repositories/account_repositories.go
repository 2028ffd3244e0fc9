package repositories

import (
	"context"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// Every lookup is company-scoped; an account belonging to another company is
// reported as not found.
type AccountReader interface {
	// FindAccountByID retrieves a single account within the given company.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts within the given company,
	// keyed by account ID. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a company with offset pagination.
	ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an account's mutable fields (name,
	// description, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
