package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// ErrTenantMismatch is returned when an actor attempts to operate on a
// company other than the one bound to their credentials.
var ErrTenantMismatch = errors.New("actor does not belong to the requested company")

type companyService struct {
	BaseService
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// NewCompanyService creates a new company service instance.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, currencyRepo: currencyRepo}
}

// AuthorizeActor verifies that the actor's credential-bound company matches
// the company being operated on. Identity never comes from request payloads.
func (s *companyService) AuthorizeActor(ctx context.Context, actor domain.Actor, companyID string) error {
	if actor.CompanyID != companyID {
		s.LogWarn(ctx, "tenant mismatch rejected", "actorCompanyID", actor.CompanyID, "requestedCompanyID", companyID)
		return ErrTenantMismatch
	}
	return nil
}

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, actor domain.Actor) (*domain.Company, error) {
	logger := s.GetLogger(ctx)

	// The base currency must exist before a company can anchor to it.
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.BaseCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("base currency %s is not registered", req.BaseCurrencyCode))
		}
		return nil, fmt.Errorf("failed to verify base currency: %w", err)
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:        uuid.NewString(),
		Name:             req.Name,
		BaseCurrencyCode: req.BaseCurrencyCode,
		IsActive:         true,
		AuditFields:      domain.NewAuditFields(actor.UserID, now),
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "failed to save company", "companyName", req.Name)
		return nil, err
	}

	logger.Info("company created", "companyID", company.CompanyID, "baseCurrency", company.BaseCurrencyCode)
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return company, nil
}
