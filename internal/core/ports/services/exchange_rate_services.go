package services

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// ExchangeRateSvcFacade resolves transaction currencies against a company's
// base currency and administers rate master data.
type ExchangeRateSvcFacade interface {
	// Resolve returns the rate converting currencyCode into the company's base
	// currency as of the given date. Same currency resolves to rate 1; a
	// missing rate fails with ErrNoExchangeRate, never a silent default.
	Resolve(ctx context.Context, companyID, currencyCode string, asOf time.Time) (*domain.RateResolution, error)

	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor domain.Actor) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error)
}

// CurrencySvcFacade administers currency master data.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actor domain.Actor) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
