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
	"github.com/mocustoms/ledger_engine/internal/utils/accounting"
)

var (
	// ErrEmptyPosting is returned when a posting request carries no lines.
	ErrEmptyPosting = errors.New("posting group must contain at least one line")

	// ErrUnbalancedPosting is returned when debit and credit equivalents of a
	// group differ after conversion. The group is never persisted.
	ErrUnbalancedPosting = errors.New("posting group debit and credit equivalents do not balance")

	// ErrNothingToReverse is returned when no posted group exists for the
	// reference being reversed.
	ErrNothingToReverse = errors.New("no posted entries exist for the given reference")

	// ErrAlreadyReversed is returned when the derived reversal reference has
	// already been posted. Reversal is idempotent; a second attempt fails.
	ErrAlreadyReversed = errors.New("reference has already been reversed")

	// ErrPostingTimeout is returned when the posting transaction exceeds its
	// configured deadline. The transaction rolls back with no rows written,
	// so the same request can safely be retried.
	ErrPostingTimeout = errors.New("posting transaction timed out")
)

const (
	defaultStatementLimit = 50
	maxStatementLimit     = 200
)

type postingService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	rateSvc     portssvc.ExchangeRateSvcFacade
	yearSvc     portssvc.FinancialYearSvcFacade
	companyAuth portssvc.CompanyAuthorizerSvc
	txTimeout   time.Duration
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// NewPostingService creates the posting engine with its collaborators.
// txTimeout bounds the database transaction that persists a group; zero
// disables the bound.
func NewPostingService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	yearSvc portssvc.FinancialYearSvcFacade,
	companyAuth portssvc.CompanyAuthorizerSvc,
	txTimeout time.Duration,
) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:  ledgerRepo,
		accountSvc:  accountSvc,
		rateSvc:     rateSvc,
		yearSvc:     yearSvc,
		companyAuth: companyAuth,
		txTimeout:   txTimeout,
	}
}

// Post validates and persists one balanced posting group. The whole pipeline
// is fail-fast: any rejection leaves the ledger untouched. Re-posting an
// already-persisted (company, reference, type) returns the existing group.
func (s *postingService) Post(ctx context.Context, companyID string, req dto.CreatePostingRequest, actor domain.Actor) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	if err := s.companyAuth.AuthorizeActor(ctx, actor, companyID); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, ErrEmptyPosting
	}

	// Idempotency: the same business event submitted twice returns the
	// original group unchanged, without re-validation.
	existing, err := s.ledgerRepo.FindGroupByReference(ctx, companyID, req.ReferenceNumber, req.TransactionType)
	if err == nil {
		logger.Info("duplicate posting returned existing group",
			"referenceNumber", req.ReferenceNumber, "postingGroupID", existing.PostingGroupID)
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Period gate on every distinct transaction date before any heavy work.
	// The persistence layer re-checks inside the posting transaction.
	seenDates := make(map[string]struct{}, len(req.Lines))
	for _, line := range req.Lines {
		key := line.TransactionDate.Format(time.DateOnly)
		if _, ok := seenDates[key]; ok {
			continue
		}
		seenDates[key] = struct{}{}
		if err := s.yearSvc.AssertOpenForDate(ctx, companyID, line.TransactionDate); err != nil {
			return nil, err
		}
	}

	accounts, err := s.resolveActiveAccounts(ctx, companyID, req.Lines)
	if err != nil {
		return nil, err
	}

	group, err := s.buildGroup(ctx, companyID, req, accounts, actor)
	if err != nil {
		return nil, err
	}

	if err := accounting.ValidateGroupBalance(group.Entries); err != nil {
		debits, credits := accounting.SumEquivalents(group.Entries)
		s.LogWarn(ctx, "unbalanced posting rejected",
			"referenceNumber", req.ReferenceNumber, "debits", debits.String(), "credits", credits.String())
		return nil, fmt.Errorf("%w: %v", ErrUnbalancedPosting, err)
	}

	return s.persistGroup(ctx, group, req.TransactionType)
}

// Reverse posts the offsetting group for a previously posted reference:
// sides mirrored, amounts, rates and dates identical.
func (s *postingService) Reverse(ctx context.Context, companyID, referenceNumber string, actor domain.Actor) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	if err := s.companyAuth.AuthorizeActor(ctx, actor, companyID); err != nil {
		return nil, err
	}

	originals, err := s.ledgerRepo.FindEntriesByReference(ctx, companyID, referenceNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNothingToReverse, referenceNumber)
		}
		return nil, err
	}
	if len(originals) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingToReverse, referenceNumber)
	}

	reversalRef := referenceNumber + domain.ReversalReferenceSuffix
	prior, err := s.ledgerRepo.FindEntriesByReference(ctx, companyID, reversalRef)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if len(prior) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, referenceNumber)
	}

	// The reversal lands on the original transaction dates, so the period
	// gate still applies: a closed period cannot be amended, only offset from
	// a later open one via a fresh posting.
	seenDates := make(map[string]struct{}, len(originals))
	for _, e := range originals {
		key := e.TransactionDate.Format(time.DateOnly)
		if _, ok := seenDates[key]; ok {
			continue
		}
		seenDates[key] = struct{}{}
		if err := s.yearSvc.AssertOpenForDate(ctx, companyID, e.TransactionDate); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	group := domain.PostingGroup{
		PostingGroupID:  uuid.NewString(),
		CompanyID:       companyID,
		ReferenceNumber: reversalRef,
		TransactionType: originals[0].TransactionType.Reversal(),
		Entries:         make([]domain.LedgerEntry, len(originals)),
	}
	for i, orig := range originals {
		group.Entries[i] = domain.LedgerEntry{
			EntryID:          uuid.NewString(),
			PostingGroupID:   group.PostingGroupID,
			CompanyID:        companyID,
			ReferenceNumber:  reversalRef,
			TransactionType:  orig.TransactionType.Reversal(),
			TransactionName:  orig.TransactionName,
			LineNo:           orig.LineNo,
			AccountID:        orig.AccountID,
			AccountCode:      orig.AccountCode,
			AccountName:      orig.AccountName,
			AccountNature:    orig.AccountNature,
			Side:             orig.Side.Opposite(),
			Amount:           orig.Amount,
			CurrencyCode:     orig.CurrencyCode,
			ExchangeRate:     orig.ExchangeRate,
			EquivalentAmount: orig.EquivalentAmount,
			TransactionDate:  orig.TransactionDate,
			Description:      fmt.Sprintf("Reversal of %s", referenceNumber),
			AuditFields:      domain.NewAuditFields(actor.UserID, now),
		}
	}

	logger.Info("posting reversal", "originalReference", referenceNumber, "reversalReference", reversalRef)
	return s.persistGroup(ctx, group, group.TransactionType)
}

func (s *postingService) GetGroupByReference(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (*domain.PostingGroup, error) {
	return s.ledgerRepo.FindGroupByReference(ctx, companyID, referenceNumber, transactionType)
}

func (s *postingService) ListGroups(ctx context.Context, companyID string, limit, offset int) ([]domain.PostingGroup, error) {
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	if limit > maxStatementLimit {
		limit = maxStatementLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.ledgerRepo.ListGroups(ctx, companyID, limit, offset)
}

func (s *postingService) ListEntriesByAccount(ctx context.Context, companyID, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountSvc.ResolveAccount(ctx, companyID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	if limit > maxStatementLimit {
		limit = maxStatementLimit
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, companyID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list account entries", "accountID", accountID)
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CorrectEntryAccount repoints one entry's account snapshot. Amounts, sides
// and dates are untouched, so the group stays balanced; the owning period
// must still be open.
func (s *postingService) CorrectEntryAccount(ctx context.Context, companyID, entryID string, req dto.CorrectEntryAccountRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.companyAuth.AuthorizeActor(ctx, actor, companyID); err != nil {
		return nil, err
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.yearSvc.AssertOpenForDate(ctx, companyID, entry.TransactionDate); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.ResolveAccount(ctx, companyID, req.NewAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("account %s is inactive", account.Code))
	}

	now := time.Now()
	if err := s.ledgerRepo.CorrectEntryAccount(ctx, companyID, entryID, *account, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "failed to correct entry account", "entryID", entryID)
		return nil, err
	}

	logger.Info("ledger entry account corrected",
		"entryID", entryID, "fromAccountID", entry.AccountID, "toAccountID", account.AccountID, "reason", req.Reason)

	entry.AccountID = account.AccountID
	entry.AccountCode = account.Code
	entry.AccountName = account.Name
	entry.AccountNature = account.Nature
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actor.UserID
	return entry, nil
}

// resolveActiveAccounts loads all referenced accounts and rejects missing or
// inactive ones before any entry is built.
func (s *postingService) resolveActiveAccounts(ctx context.Context, companyID string, lines []dto.PostingLineRequest) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountSvc.ResolveAccounts(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", id))
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s is inactive", account.Code))
		}
	}
	return accounts, nil
}

// buildGroup converts request lines into snapshot-bearing ledger entries with
// resolved exchange rates and base-currency equivalents.
func (s *postingService) buildGroup(ctx context.Context, companyID string, req dto.CreatePostingRequest, accounts map[string]domain.Account, actor domain.Actor) (domain.PostingGroup, error) {
	group := domain.PostingGroup{
		PostingGroupID:  uuid.NewString(),
		CompanyID:       companyID,
		ReferenceNumber: req.ReferenceNumber,
		TransactionType: req.TransactionType,
		Entries:         make([]domain.LedgerEntry, len(req.Lines)),
	}

	now := time.Now()
	rateCache := make(map[string]*domain.RateResolution)

	for i, line := range req.Lines {
		account := accounts[line.AccountID]

		cacheKey := line.CurrencyCode + "|" + line.TransactionDate.Format(time.DateOnly)
		resolution, ok := rateCache[cacheKey]
		if !ok {
			var err error
			resolution, err = s.rateSvc.Resolve(ctx, companyID, line.CurrencyCode, line.TransactionDate)
			if err != nil {
				return domain.PostingGroup{}, err
			}
			rateCache[cacheKey] = resolution
		}

		group.Entries[i] = domain.LedgerEntry{
			EntryID:          uuid.NewString(),
			PostingGroupID:   group.PostingGroupID,
			CompanyID:        companyID,
			ReferenceNumber:  req.ReferenceNumber,
			TransactionType:  req.TransactionType,
			TransactionName:  req.TransactionName,
			LineNo:           i + 1,
			AccountID:        account.AccountID,
			AccountCode:      account.Code,
			AccountName:      account.Name,
			AccountNature:    account.Nature,
			Side:             line.Side,
			Amount:           line.Amount,
			CurrencyCode:     line.CurrencyCode,
			ExchangeRate:     resolution.Rate,
			EquivalentAmount: accounting.EquivalentAmount(line.Amount, resolution.Rate),
			TransactionDate:  line.TransactionDate,
			Description:      line.Description,
			AuditFields:      domain.NewAuditFields(actor.UserID, now),
		}
	}

	return group, nil
}

// persistGroup saves the group and resolves concurrent-duplicate races: when
// the repository reports a different surviving group ID, the already-posted
// group is fetched and returned.
func (s *postingService) persistGroup(ctx context.Context, group domain.PostingGroup, transactionType domain.TransactionType) (*domain.PostingGroup, error) {
	logger := s.GetLogger(ctx)

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	savedID, err := s.ledgerRepo.SavePostingGroup(ctx, group)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.LogError(ctx, err, "posting transaction exceeded its deadline", "referenceNumber", group.ReferenceNumber)
			return nil, ErrPostingTimeout
		}
		s.LogError(ctx, err, "failed to persist posting group", "referenceNumber", group.ReferenceNumber)
		return nil, err
	}

	if savedID != group.PostingGroupID {
		logger.Info("concurrent duplicate resolved to existing group",
			"referenceNumber", group.ReferenceNumber, "postingGroupID", savedID)
		return s.ledgerRepo.FindGroupByReference(ctx, group.CompanyID, group.ReferenceNumber, transactionType)
	}

	logger.Info("posting group persisted",
		"postingGroupID", group.PostingGroupID,
		"referenceNumber", group.ReferenceNumber,
		"transactionType", string(transactionType),
		"entryCount", len(group.Entries))
	return &group, nil
}
