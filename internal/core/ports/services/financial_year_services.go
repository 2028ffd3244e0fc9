package services

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/dto"
)

// FinancialYearSvcFacade is the financial period gate plus period lifecycle.
type FinancialYearSvcFacade interface {
	// AssertOpenForDate fails with ErrNoOpenPeriod when no year covers the
	// date, or a *PeriodClosedError when the covering year is closed.
	AssertOpenForDate(ctx context.Context, companyID string, date time.Time) error

	CreateFinancialYear(ctx context.Context, companyID string, req dto.CreateFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error)

	// CloseFinancialYear marks the year closed. The transition is terminal.
	CloseFinancialYear(ctx context.Context, companyID, yearID string, req dto.CloseFinancialYearRequest, actor domain.Actor) (*domain.FinancialYear, error)

	ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error)
}
