package repositories

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// ExchangeRateRepositoryFacade defines operations for exchange rate data.
type ExchangeRateRepositoryFacade interface {
	// FindRateOnOrBefore retrieves the most recent rate for the currency pair
	// effective on or before the given date. Returns apperrors.ErrNotFound when
	// no such rate exists; callers must never substitute a default rate.
	FindRateOnOrBefore(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// SaveExchangeRate inserts a rate, or updates it when one already exists
	// for the same pair and effective date.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// ListExchangeRates retrieves rates for a currency pair, newest first.
	ListExchangeRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error)
}
