package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/core/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.AccountSvcFacade
	companyID        string
	actor            domain.Actor
	account          domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo)

	suite.companyID = uuid.NewString()
	suite.actor = domain.Actor{UserID: uuid.NewString(), CompanyID: suite.companyID}
	suite.account = domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    suite.companyID,
		Code:         "1000",
		Name:         "Cash",
		Nature:       domain.DebitNormal,
		Category:     domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *AccountServiceTestSuite) TestResolveAccount_Success() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.account.AccountID).
		Return(&suite.account, nil).Once()

	account, err := suite.service.ResolveAccount(ctx, suite.companyID, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(suite.account.Code, account.Code)
}

func (suite *AccountServiceTestSuite) TestResolveAccount_ForeignCompanyReportsNotFound() {
	ctx := context.Background()
	otherCompanyID := uuid.NewString()

	// The repository scopes lookups by company; an account owned elsewhere is
	// indistinguishable from one that never existed.
	suite.mockAccountRepo.On("FindAccountByID", ctx, otherCompanyID, suite.account.AccountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveAccount(ctx, otherCompanyID, suite.account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "4000",
		Name:         "Sales Revenue",
		Nature:       domain.CreditNormal,
		Category:     domain.Revenue,
		CurrencyCode: "USD",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.companyID, account.CompanyID)
	suite.True(account.IsActive)
	suite.Equal(suite.actor.UserID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "4000",
		Name:         "Sales Revenue",
		Nature:       domain.CreditNormal,
		Category:     domain.Revenue,
		CurrencyCode: "ZZZ",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash again",
		Nature:       domain.DebitNormal,
		Category:     domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_MutableFieldsOnly() {
	ctx := context.Background()
	newName := "Cash on Hand"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.account.AccountID).
		Return(&suite.account, nil).Once()

	var updated domain.Account
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.companyID, suite.account.AccountID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal("Cash on Hand", account.Name)
	// Code, nature and category never change through updates.
	suite.Equal("1000", updated.Code)
	suite.Equal(domain.DebitNormal, updated.Nature)
	suite.Equal(domain.Asset, updated.Category)
	suite.Equal(suite.actor.UserID, updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, suite.account.AccountID).
		Return(&suite.account, nil).Once()

	var updated domain.Account
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, suite.account.AccountID, suite.actor)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
}

func (suite *AccountServiceTestSuite) TestListAccounts_LimitClamped() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID, 200, 0).
		Return([]domain.Account{suite.account}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.companyID, 9999, -5)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
