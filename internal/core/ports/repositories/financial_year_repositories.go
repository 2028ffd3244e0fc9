package repositories

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// FinancialYearReader defines read operations for financial year data.
type FinancialYearReader interface {
	// FindYearCoveringDate retrieves the company's financial year whose
	// [startDate, endDate] range contains the given date.
	FindYearCoveringDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error)

	// FindYearByID retrieves a financial year within the given company.
	FindYearByID(ctx context.Context, companyID, yearID string) (*domain.FinancialYear, error)

	// FindOverlappingYears retrieves any years of the company overlapping the
	// given range, used to reject overlapping period setup.
	FindOverlappingYears(ctx context.Context, companyID string, start, end time.Time) ([]domain.FinancialYear, error)

	// ListFinancialYears retrieves all years of a company ordered by start date.
	ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error)
}

// FinancialYearWriter defines write operations for financial year data.
type FinancialYearWriter interface {
	// SaveFinancialYear inserts a new financial year.
	SaveFinancialYear(ctx context.Context, year domain.FinancialYear) error

	// CloseFinancialYear marks a year closed. Closing is terminal; the
	// repository rejects closing an already-closed year.
	CloseFinancialYear(ctx context.Context, companyID, yearID, notes, closedBy string, closedAt time.Time) error
}

// FinancialYearRepositoryFacade combines all financial year repository interfaces.
type FinancialYearRepositoryFacade interface {
	FinancialYearReader
	FinancialYearWriter
}
