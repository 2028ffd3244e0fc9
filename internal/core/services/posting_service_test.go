package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/core/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindGroupByReference(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (*domain.PostingGroup, error) {
	args := m.Called(ctx, companyID, referenceNumber, transactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingGroup), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByReference(ctx context.Context, companyID, referenceNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, companyID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListGroups(ctx context.Context, companyID string, limit, offset int) ([]domain.PostingGroup, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingGroup), args.Error(1)
}

func (m *MockLedgerRepository) SavePostingGroup(ctx context.Context, group domain.PostingGroup) (string, error) {
	args := m.Called(ctx, group)
	// Configured empty ID means "echo the group's own ID", mirroring the real
	// repository's behavior on a clean insert.
	if args.String(0) == "" && args.Error(1) == nil {
		return group.PostingGroupID, nil
	}
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) CorrectEntryAccount(ctx context.Context, companyID, entryID string, account domain.Account, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, companyID, entryID, account, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) ResolveAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveAccounts(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID, accountID string, actor domain.Actor) error {
	args := m.Called(ctx, companyID, accountID, actor)
	return args.Error(0)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

func (m *MockExchangeRateService) Resolve(ctx context.Context, companyID, currencyCode string, asOf time.Time) (*domain.RateResolution, error) {
	args := m.Called(ctx, companyID, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateResolution), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor domain.Actor) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock FinancialYearService ---
type MockFinancialYearService struct {
	mock.Mock
}

var _ portssvc.FinancialYearSvcFacade = (*MockFinancialYearService)(nil)

func (m *MockFinancialYearService) AssertOpenForDate(ctx context.Context, companyID string, date time.Time) error {
	args := m.Called(ctx, companyID, date)
	return args.Error(0)
}

func (m *MockFinancialYearService) CreateFinancialYear(ctx context.Context, companyID string, req dto.CreateFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) CloseFinancialYear(ctx context.Context, companyID, yearID string, req dto.CloseFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error) {
	args := m.Called(ctx, companyID, yearID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeActor(ctx context.Context, actor domain.Actor, companyID string) error {
	args := m.Called(ctx, actor, companyID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountSvc   *MockAccountService
	mockRateSvc      *MockExchangeRateService
	mockYearSvc      *MockFinancialYearService
	mockCompanyAuth  *MockCompanyAuthorizer
	service          portssvc.PostingSvcFacade
	companyID        string
	actor            domain.Actor
	cashAccount      domain.Account
	revenueAccount   domain.Account
	txDate           time.Time
	baseRate         *domain.RateResolution
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockRateSvc = new(MockExchangeRateService)
	suite.mockYearSvc = new(MockFinancialYearService)
	suite.mockCompanyAuth = new(MockCompanyAuthorizer)
	suite.service = services.NewPostingService(
		suite.mockLedgerRepo, suite.mockAccountSvc, suite.mockRateSvc, suite.mockYearSvc, suite.mockCompanyAuth, 0)

	suite.companyID = uuid.NewString()
	suite.actor = domain.Actor{
		UserID:      uuid.NewString(),
		CompanyID:   suite.companyID,
		DisplayName: "Test User",
	}
	suite.txDate = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	suite.baseRate = &domain.RateResolution{Rate: decimal.NewFromInt(1), BaseCurrencyCode: "USD"}

	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    suite.companyID,
		Code:         "1000",
		Name:         "Cash",
		Nature:       domain.DebitNormal,
		Category:     domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    suite.companyID,
		Code:         "4000",
		Name:         "Sales Revenue",
		Nature:       domain.CreditNormal,
		Category:     domain.Revenue,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *PostingServiceTestSuite) balancedRequest() dto.CreatePostingRequest {
	return dto.CreatePostingRequest{
		ReferenceNumber: "INV-1001",
		TransactionType: domain.SalesInvoice,
		TransactionName: "Invoice 1001",
		Lines: []dto.PostingLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(250), CurrencyCode: "USD", TransactionDate: suite.txDate},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(250), CurrencyCode: "USD", TransactionDate: suite.txDate},
		},
	}
}

func (suite *PostingServiceTestSuite) expectHappyPathUpTo(req dto.CreatePostingRequest) {
	ctx := context.Background()
	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()
	suite.mockAccountSvc.On("ResolveAccounts", ctx, suite.companyID,
		[]string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).
		Return(map[string]domain.Account{
			suite.cashAccount.AccountID:    suite.cashAccount,
			suite.revenueAccount.AccountID: suite.revenueAccount,
		}, nil).Once()
}

// --- Post ---

func (suite *PostingServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()

	var savedGroup domain.PostingGroup
	suite.mockLedgerRepo.On("SavePostingGroup", ctx, mock.AnythingOfType("domain.PostingGroup")).
		Run(func(args mock.Arguments) {
			savedGroup = args.Get(1).(domain.PostingGroup)
		}).
		Return("", nil).Once()

	group, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.NotEmpty(group.PostingGroupID)
	suite.Equal(req.ReferenceNumber, group.ReferenceNumber)
	suite.Len(group.Entries, 2)

	// Entries carry account snapshots, equivalents and positional line numbers.
	suite.Equal(suite.cashAccount.Code, savedGroup.Entries[0].AccountCode)
	suite.Equal(domain.DebitNormal, savedGroup.Entries[0].AccountNature)
	suite.Equal(1, savedGroup.Entries[0].LineNo)
	suite.Equal(2, savedGroup.Entries[1].LineNo)
	suite.True(savedGroup.Entries[0].EquivalentAmount.Equal(decimal.NewFromInt(250)))
	suite.True(savedGroup.Entries[1].EquivalentAmount.Equal(decimal.NewFromInt(250)))
	suite.Equal(suite.actor.UserID, savedGroup.Entries[0].CreatedBy)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_EmptyLines() {
	ctx := context.Background()
	req := dto.CreatePostingRequest{ReferenceNumber: "INV-1", TransactionType: domain.SalesInvoice}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyPosting)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Amount = decimal.NewFromInt(200) // credit side short by 50

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedPosting)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Amount = decimal.Zero
	req.Lines[1].Amount = decimal.Zero

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedPosting)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_IdempotentReturnsExisting() {
	ctx := context.Background()
	req := suite.balancedRequest()
	existing := &domain.PostingGroup{
		PostingGroupID:  uuid.NewString(),
		CompanyID:       suite.companyID,
		ReferenceNumber: req.ReferenceNumber,
		TransactionType: req.TransactionType,
	}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(existing, nil).Once()

	group, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(existing.PostingGroupID, group.PostingGroupID)
	suite.mockYearSvc.AssertNotCalled(suite.T(), "AssertOpenForDate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_PeriodClosed() {
	ctx := context.Background()
	req := suite.balancedRequest()
	closedAt := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	periodErr := &services.PeriodClosedError{YearName: "FY 2024-25", ClosedAt: &closedAt}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(periodErr).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	var pce *services.PeriodClosedError
	suite.ErrorAs(err, &pce)
	suite.Equal("FY 2024-25", pce.YearName)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ResolveAccounts", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_NoOpenPeriod() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(services.ErrNoOpenPeriod).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoOpenPeriod)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_MissingExchangeRate() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].CurrencyCode = "EUR"
	req.Lines[1].CurrencyCode = "EUR"

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "EUR", suite.txDate).
		Return(nil, services.ErrNoExchangeRate).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoExchangeRate)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_ForeignCurrencyEquivalents() {
	ctx := context.Background()
	req := dto.CreatePostingRequest{
		ReferenceNumber: "INV-2002",
		TransactionType: domain.SalesInvoice,
		Lines: []dto.PostingLineRequest{
			{AccountID: suite.cashAccount.AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100), CurrencyCode: "EUR", TransactionDate: suite.txDate},
			{AccountID: suite.revenueAccount.AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(100), CurrencyCode: "EUR", TransactionDate: suite.txDate},
		},
	}
	eurRate := &domain.RateResolution{Rate: decimal.RequireFromString("1.0925"), BaseCurrencyCode: "USD"}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()
	suite.mockAccountSvc.On("ResolveAccounts", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Account{
			suite.cashAccount.AccountID:    suite.cashAccount,
			suite.revenueAccount.AccountID: suite.revenueAccount,
		}, nil).Once()
	// One distinct (currency, date) pair means one rate lookup for both lines.
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "EUR", suite.txDate).Return(eurRate, nil).Once()

	var savedGroup domain.PostingGroup
	suite.mockLedgerRepo.On("SavePostingGroup", ctx, mock.AnythingOfType("domain.PostingGroup")).
		Run(func(args mock.Arguments) {
			savedGroup = args.Get(1).(domain.PostingGroup)
		}).
		Return("", nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	expected := decimal.RequireFromString("109.2500")
	suite.True(savedGroup.Entries[0].EquivalentAmount.Equal(expected),
		"got %s", savedGroup.Entries[0].EquivalentAmount.String())
	suite.True(savedGroup.Entries[0].ExchangeRate.Equal(eurRate.Rate))
	suite.mockRateSvc.AssertNumberOfCalls(suite.T(), "Resolve", 1)
}

func (suite *PostingServiceTestSuite) TestPost_TenantMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest()
	otherCompanyID := uuid.NewString()

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, otherCompanyID).
		Return(services.ErrTenantMismatch).Once()

	_, err := suite.service.Post(ctx, otherCompanyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTenantMismatch)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindGroupByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_AccountNotFound() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()
	// Only one of the two referenced accounts exists in this company.
	suite.mockAccountSvc.On("ResolveAccounts", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	inactive := suite.revenueAccount
	inactive.IsActive = false

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()
	suite.mockAccountSvc.On("ResolveAccounts", ctx, suite.companyID, mock.Anything).
		Return(map[string]domain.Account{
			suite.cashAccount.AccountID: suite.cashAccount,
			inactive.AccountID:          inactive,
		}, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_ConcurrentDuplicateResolvesToExisting() {
	ctx := context.Background()
	req := suite.balancedRequest()
	survivingID := uuid.NewString()
	surviving := &domain.PostingGroup{
		PostingGroupID:  survivingID,
		CompanyID:       suite.companyID,
		ReferenceNumber: req.ReferenceNumber,
		TransactionType: req.TransactionType,
	}

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()
	// Repository reports a different surviving ID: someone else won the race.
	suite.mockLedgerRepo.On("SavePostingGroup", ctx, mock.AnythingOfType("domain.PostingGroup")).
		Return(survivingID, nil).Once()
	suite.mockLedgerRepo.On("FindGroupByReference", ctx, suite.companyID, req.ReferenceNumber, req.TransactionType).
		Return(surviving, nil).Once()

	group, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(survivingID, group.PostingGroupID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Reverse ---

func (suite *PostingServiceTestSuite) originalEntries(ref string) []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{
			EntryID:          uuid.NewString(),
			PostingGroupID:   uuid.NewString(),
			CompanyID:        suite.companyID,
			ReferenceNumber:  ref,
			TransactionType:  domain.SalesInvoice,
			LineNo:           1,
			AccountID:        suite.cashAccount.AccountID,
			AccountCode:      suite.cashAccount.Code,
			AccountName:      suite.cashAccount.Name,
			AccountNature:    domain.DebitNormal,
			Side:             domain.Debit,
			Amount:           decimal.NewFromInt(250),
			CurrencyCode:     "USD",
			ExchangeRate:     decimal.NewFromInt(1),
			EquivalentAmount: decimal.NewFromInt(250),
			TransactionDate:  suite.txDate,
		},
		{
			EntryID:          uuid.NewString(),
			PostingGroupID:   uuid.NewString(),
			CompanyID:        suite.companyID,
			ReferenceNumber:  ref,
			TransactionType:  domain.SalesInvoice,
			LineNo:           2,
			AccountID:        suite.revenueAccount.AccountID,
			AccountCode:      suite.revenueAccount.Code,
			AccountName:      suite.revenueAccount.Name,
			AccountNature:    domain.CreditNormal,
			Side:             domain.Credit,
			Amount:           decimal.NewFromInt(250),
			CurrencyCode:     "USD",
			ExchangeRate:     decimal.NewFromInt(1),
			EquivalentAmount: decimal.NewFromInt(250),
			TransactionDate:  suite.txDate,
		},
	}
}

func (suite *PostingServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	ref := "INV-1001"
	originals := suite.originalEntries(ref)

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref).Return(originals, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref+"-REV").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()

	var savedGroup domain.PostingGroup
	suite.mockLedgerRepo.On("SavePostingGroup", ctx, mock.AnythingOfType("domain.PostingGroup")).
		Run(func(args mock.Arguments) {
			savedGroup = args.Get(1).(domain.PostingGroup)
		}).
		Return("", nil).Once()

	group, err := suite.service.Reverse(ctx, suite.companyID, ref, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(ref+"-REV", group.ReferenceNumber)
	suite.Equal(domain.TransactionType("SALES_INVOICE_REVERSAL"), group.TransactionType)
	suite.Require().Len(savedGroup.Entries, 2)

	// Sides mirrored, everything else preserved.
	suite.Equal(domain.Credit, savedGroup.Entries[0].Side)
	suite.Equal(domain.Debit, savedGroup.Entries[1].Side)
	suite.True(savedGroup.Entries[0].Amount.Equal(originals[0].Amount))
	suite.True(savedGroup.Entries[0].ExchangeRate.Equal(originals[0].ExchangeRate))
	suite.True(savedGroup.Entries[0].EquivalentAmount.Equal(originals[0].EquivalentAmount))
	suite.Equal(originals[0].TransactionDate, savedGroup.Entries[0].TransactionDate)
	suite.Equal(originals[0].AccountID, savedGroup.Entries[0].AccountID)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverse_NothingToReverse() {
	ctx := context.Background()
	ref := "MISSING-REF"

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, ref, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNothingToReverse)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverse_AlreadyReversed() {
	ctx := context.Background()
	ref := "INV-1001"
	originals := suite.originalEntries(ref)
	reversals := suite.originalEntries(ref + "-REV")

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref).Return(originals, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref+"-REV").Return(reversals, nil).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, ref, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverse_PeriodClosed() {
	ctx := context.Background()
	ref := "INV-1001"
	originals := suite.originalEntries(ref)
	periodErr := &services.PeriodClosedError{YearName: "FY 2024-25"}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref).Return(originals, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByReference", ctx, suite.companyID, ref+"-REV").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(periodErr).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, ref, suite.actor)

	suite.Require().Error(err)
	var pce *services.PeriodClosedError
	suite.ErrorAs(err, &pce)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePostingGroup", mock.Anything, mock.Anything)
}

// --- CorrectEntryAccount ---

func (suite *PostingServiceTestSuite) TestCorrectEntryAccount_Success() {
	ctx := context.Background()
	entry := &suite.originalEntries("INV-1001")[0]
	newAccount := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Code:      "1010",
		Name:      "Petty Cash",
		Nature:    domain.DebitNormal,
		Category:  domain.Asset,
		IsActive:  true,
	}
	req := dto.CorrectEntryAccountRequest{NewAccountID: newAccount.AccountID, Reason: "posted to wrong cash account"}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, suite.companyID, entry.EntryID).Return(entry, nil).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(nil).Once()
	suite.mockAccountSvc.On("ResolveAccount", ctx, suite.companyID, newAccount.AccountID).Return(&newAccount, nil).Once()
	suite.mockLedgerRepo.On("CorrectEntryAccount", ctx, suite.companyID, entry.EntryID, newAccount, suite.actor.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	corrected, err := suite.service.CorrectEntryAccount(ctx, suite.companyID, entry.EntryID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(newAccount.AccountID, corrected.AccountID)
	suite.Equal(newAccount.Code, corrected.AccountCode)
	// Amounts, side and date are untouched.
	suite.True(corrected.Amount.Equal(decimal.NewFromInt(250)))
	suite.Equal(domain.Debit, corrected.Side)
	suite.Equal(suite.txDate, corrected.TransactionDate)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCorrectEntryAccount_PeriodClosed() {
	ctx := context.Background()
	entry := &suite.originalEntries("INV-1001")[0]
	req := dto.CorrectEntryAccountRequest{NewAccountID: uuid.NewString(), Reason: "wrong account"}
	periodErr := &services.PeriodClosedError{YearName: "FY 2024-25"}

	suite.mockCompanyAuth.On("AuthorizeActor", ctx, suite.actor, suite.companyID).Return(nil).Once()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, suite.companyID, entry.EntryID).Return(entry, nil).Once()
	suite.mockYearSvc.On("AssertOpenForDate", ctx, suite.companyID, suite.txDate).Return(periodErr).Once()

	_, err := suite.service.CorrectEntryAccount(ctx, suite.companyID, entry.EntryID, req, suite.actor)

	suite.Require().Error(err)
	var pce *services.PeriodClosedError
	suite.ErrorAs(err, &pce)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CorrectEntryAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListEntriesByAccount ---

func (suite *PostingServiceTestSuite) TestListEntriesByAccount_Success() {
	ctx := context.Background()
	entries := suite.originalEntries("INV-1001")[:1]
	token := "next-page-token"

	suite.mockAccountSvc.On("ResolveAccount", ctx, suite.companyID, suite.cashAccount.AccountID).
		Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, suite.companyID, suite.cashAccount.AccountID, 50, (*string)(nil)).
		Return(entries, token, nil).Once()

	resp, err := suite.service.ListEntriesByAccount(ctx, suite.companyID, suite.cashAccount.AccountID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *PostingServiceTestSuite) TestListGroups_LimitClamped() {
	ctx := context.Background()
	expected := []domain.PostingGroup{
		{PostingGroupID: uuid.NewString(), CompanyID: suite.companyID, ReferenceNumber: "INV-1001", TransactionType: domain.SalesInvoice},
	}

	suite.mockLedgerRepo.On("ListGroups", ctx, suite.companyID, 200, 0).
		Return(expected, nil).Once()

	groups, err := suite.service.ListGroups(ctx, suite.companyID, 9999, -3)

	suite.Require().NoError(err)
	suite.Equal(expected, groups)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListEntriesByAccount_UnknownAccount() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	suite.mockAccountSvc.On("ResolveAccount", ctx, suite.companyID, unknownID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListEntriesByAccount(ctx, suite.companyID, unknownID, dto.ListEntriesParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListEntriesByAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_SaveFailurePropagates() {
	ctx := context.Background()
	req := suite.balancedRequest()
	repoErr := assert.AnError

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()
	suite.mockLedgerRepo.On("SavePostingGroup", ctx, mock.AnythingOfType("domain.PostingGroup")).
		Return("ignored", repoErr).Once()

	_, err := suite.service.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *PostingServiceTestSuite) TestPost_TransactionDeadlineApplied() {
	ctx := context.Background()
	req := suite.balancedRequest()

	bounded := services.NewPostingService(
		suite.mockLedgerRepo, suite.mockAccountSvc, suite.mockRateSvc, suite.mockYearSvc, suite.mockCompanyAuth,
		5*time.Second)

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()

	// The persist step must run under a context with a deadline even though
	// the incoming request context has none.
	boundedCtx := mock.MatchedBy(func(c context.Context) bool {
		_, ok := c.Deadline()
		return ok
	})
	suite.mockLedgerRepo.On("SavePostingGroup", boundedCtx, mock.AnythingOfType("domain.PostingGroup")).
		Return("", nil).Once()

	group, err := bounded.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_TimeoutReturnsRetryableError() {
	ctx := context.Background()
	req := suite.balancedRequest()

	bounded := services.NewPostingService(
		suite.mockLedgerRepo, suite.mockAccountSvc, suite.mockRateSvc, suite.mockYearSvc, suite.mockCompanyAuth,
		5*time.Second)

	suite.expectHappyPathUpTo(req)
	suite.mockRateSvc.On("Resolve", ctx, suite.companyID, "USD", suite.txDate).Return(suite.baseRate, nil).Once()
	suite.mockLedgerRepo.On("SavePostingGroup", mock.Anything, mock.AnythingOfType("domain.PostingGroup")).
		Return("ignored", context.DeadlineExceeded).Once()

	_, err := bounded.Post(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPostingTimeout)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
