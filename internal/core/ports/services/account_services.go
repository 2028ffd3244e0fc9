package services

import (
	"context"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// AccountSvcFacade is the account directory contract. Reads are what the
// posting engine depends on; writes exist to administer the chart of accounts.
type AccountSvcFacade interface {
	// ResolveAccount looks up an active-or-inactive account within a company.
	// An account owned by a different company resolves to apperrors.ErrNotFound.
	ResolveAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// ResolveAccounts resolves several accounts at once, keyed by account ID.
	ResolveAccounts(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID string, actor domain.Actor) error
	ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error)
}
