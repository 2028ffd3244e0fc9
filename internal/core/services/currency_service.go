package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// NewCurrencyService creates a new currency service instance.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actor domain.Actor) (*domain.Currency, error) {
	code := strings.ToUpper(req.CurrencyCode)

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields:  domain.NewAuditFields(actor.UserID, time.Now()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("currency %s already exists", code), err)
		}
		s.LogError(ctx, err, "failed to save currency", "currencyCode", code)
		return nil, err
	}
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
