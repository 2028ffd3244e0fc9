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

const (
	defaultAccountListLimit = 50
	maxAccountListLimit     = 200
)

type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// NewAccountService creates a new account service instance.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, currencyRepo: currencyRepo}
}

func (s *accountService) ResolveAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to resolve account", "accountID", accountID)
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ResolveAccounts(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve accounts", "count", len(accountIDs))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	logger := s.GetLogger(ctx)

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("currency %s is not registered", req.CurrencyCode))
		}
		return nil, fmt.Errorf("failed to verify account currency: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    companyID,
		Code:         req.Code,
		Name:         req.Name,
		Nature:       req.Nature,
		Category:     req.Category,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor.UserID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", req.Code), err)
		}
		s.LogError(ctx, err, "failed to save account", "accountCode", req.Code)
		return nil, err
	}

	logger.Info("account created", "accountID", account.AccountID, "code", account.Code)
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", "accountID", accountID)
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID string, actor domain.Actor) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, companyID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, actor)
	return err
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultAccountListLimit
	}
	if limit > maxAccountListLimit {
		limit = maxAccountListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
}
