package repositories

import (
	"context"
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregation queries over ledger
// entries. Aggregation groups by account and reference number and must
// tolerate entries arriving in any commit order.
type ReportingRepositoryFacade interface {
	// GetTrialBalanceData sums debit and credit equivalents per account for
	// all entries of the company dated on or before asOf.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
