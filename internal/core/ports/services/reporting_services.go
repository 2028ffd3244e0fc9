package services

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// ReportingSvcFacade is the downstream consumer contract: read-only sums over
// posted ledger entries.
type ReportingSvcFacade interface {
	// TrialBalance aggregates per-account debit/credit equivalents for all
	// entries dated on or before asOf.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, actor domain.Actor) ([]domain.TrialBalanceRow, error)
}
