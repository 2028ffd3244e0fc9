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

// ErrNoOpenPeriod is returned when no financial year of the company covers
// the transaction date.
var ErrNoOpenPeriod = errors.New("no financial period covers the transaction date")

// PeriodClosedError reports a write attempt into a closed financial period.
// It carries the closing metadata so callers can explain the rejection.
type PeriodClosedError struct {
	YearName     string
	ClosedAt     *time.Time
	ClosingNotes string
}

func (e *PeriodClosedError) Error() string {
	return fmt.Sprintf("financial period %s is closed", e.YearName)
}

type financialYearService struct {
	BaseService
	yearRepo portsrepo.FinancialYearRepositoryFacade
}

var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

// NewFinancialYearService creates a new financial year service instance.
func NewFinancialYearService(yearRepo portsrepo.FinancialYearRepositoryFacade) portssvc.FinancialYearSvcFacade {
	return &financialYearService{yearRepo: yearRepo}
}

// AssertOpenForDate is the period gate. Every ledger write passes through it
// before touching the ledger, and the persistence layer re-checks the same
// condition inside the posting transaction.
func (s *financialYearService) AssertOpenForDate(ctx context.Context, companyID string, date time.Time) error {
	year, err := s.yearRepo.FindYearCoveringDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNoOpenPeriod, date.Format(time.DateOnly))
		}
		s.LogError(ctx, err, "failed to look up financial period", "date", date.Format(time.DateOnly))
		return err
	}
	if year.IsClosed {
		return &PeriodClosedError{
			YearName:     year.Name,
			ClosedAt:     year.ClosedAt,
			ClosingNotes: year.ClosingNotes,
		}
	}
	return nil
}

func (s *financialYearService) CreateFinancialYear(ctx context.Context, companyID string, req dto.CreateFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationError("end date must be after start date")
	}

	overlapping, err := s.yearRepo.FindOverlappingYears(ctx, companyID, req.StartDate, req.EndDate)
	if err != nil {
		s.LogError(ctx, err, "failed to check for overlapping years")
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperrors.NewAppError(409,
			fmt.Sprintf("the requested range overlaps financial year %s", overlapping[0].Name), apperrors.ErrConflict)
	}

	year := domain.FinancialYear{
		YearID:      uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsClosed:    false,
		AuditFields: domain.NewAuditFields(actor.UserID, time.Now()),
	}

	if err := s.yearRepo.SaveFinancialYear(ctx, year); err != nil {
		s.LogError(ctx, err, "failed to save financial year", "yearName", req.Name)
		return nil, err
	}

	s.LogInfo(ctx, "financial year created", "yearID", year.YearID, "name", year.Name)
	return &year, nil
}

// CloseFinancialYear marks the year closed. There is no reopening path; the
// only remedy after an accidental close is reversal entries in a later period.
func (s *financialYearService) CloseFinancialYear(ctx context.Context, companyID, yearID string, req dto.CloseFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error) {
	year, err := s.yearRepo.FindYearByID(ctx, companyID, yearID)
	if err != nil {
		return nil, err
	}
	if year.IsClosed {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("financial year %s is already closed", year.Name), apperrors.ErrConflict)
	}

	closedAt := time.Now()
	if err := s.yearRepo.CloseFinancialYear(ctx, companyID, yearID, req.ClosingNotes, actor.UserID, closedAt); err != nil {
		s.LogError(ctx, err, "failed to close financial year", "yearID", yearID)
		return nil, err
	}

	year.IsClosed = true
	year.ClosedAt = &closedAt
	year.ClosedBy = actor.UserID
	year.ClosingNotes = req.ClosingNotes
	year.LastUpdatedAt = closedAt
	year.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "financial year closed", "yearID", yearID, "name", year.Name)
	return year, nil
}

func (s *financialYearService) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	return s.yearRepo.ListFinancialYears(ctx, companyID)
}
