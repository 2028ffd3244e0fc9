package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// ErrNoExchangeRate is returned when a foreign-currency posting has no rate
// effective on or before the transaction date. There is no default rate; the
// caller must abort the posting.
var ErrNoExchangeRate = errors.New("no exchange rate available for currency pair on or before date")

const defaultRateListLimit = 50

type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// NewExchangeRateService creates a new exchange rate service instance.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

// Resolve converts a transaction currency into the company's base currency
// as of the given date. Base-currency transactions always resolve to rate 1
// without a rate lookup.
func (s *exchangeRateService) Resolve(ctx context.Context, companyID, currencyCode string, asOf time.Time) (*domain.RateResolution, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "failed to load company for rate resolution", "companyID", companyID)
		return nil, err
	}

	code := strings.ToUpper(currencyCode)
	if code == company.BaseCurrencyCode {
		return &domain.RateResolution{
			Rate:             decimal.NewFromInt(1),
			BaseCurrencyCode: company.BaseCurrencyCode,
		}, nil
	}

	rate, err := s.rateRepo.FindRateOnOrBefore(ctx, code, company.BaseCurrencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "no exchange rate on or before date",
				"from", code, "to", company.BaseCurrencyCode, "asOf", asOf.Format(time.DateOnly))
			return nil, fmt.Errorf("%w: %s->%s as of %s", ErrNoExchangeRate, code, company.BaseCurrencyCode, asOf.Format(time.DateOnly))
		}
		return nil, err
	}

	return &domain.RateResolution{
		Rate:             rate.Rate,
		BaseCurrencyCode: company.BaseCurrencyCode,
	}, nil
}

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor domain.Actor) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if from == to {
		return nil, apperrors.NewValidationError("from and to currencies must differ")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}
	for _, code := range []string{from, to} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("currency %s is not registered", code))
			}
			return nil, fmt.Errorf("failed to verify currency %s: %w", code, err)
		}
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields:      domain.NewAuditFields(actor.UserID, time.Now()),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate", "from", from, "to", to)
		return nil, err
	}

	s.LogInfo(ctx, "exchange rate saved", "from", from, "to", to,
		"rate", rate.Rate.String(), "dateEffective", rate.DateEffective.Format(time.DateOnly))
	return &rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	if limit <= 0 {
		limit = defaultRateListLimit
	}
	return s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode), limit)
}
