package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies effective from a date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> currencies.code
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> currencies.code
	Rate             decimal.Decimal `json:"rate"`             // Precise decimal type
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// RateResolution is the result of resolving a transaction currency against a
// company's base currency for a given date.
type RateResolution struct {
	Rate             decimal.Decimal `json:"rate"`
	BaseCurrencyCode string          `json:"baseCurrencyCode"`
}
