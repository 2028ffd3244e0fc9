package repositories

import (
	"context"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// CurrencyRepositoryFacade defines operations for currency master data.
type CurrencyRepositoryFacade interface {
	// FindCurrencyByCode retrieves a currency by its ISO code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// SaveCurrency inserts a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CompanyRepositoryFacade defines operations for company (tenant) data.
type CompanyRepositoryFacade interface {
	// FindCompanyByID retrieves a company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error
}
