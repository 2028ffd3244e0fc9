package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for read-only reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetTrialBalanceData sums debit and credit equivalents per account for all
// entries dated on or before asOf. The aggregation keys on account identity,
// not insert order, so entries committed in any order sum the same.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			e.account_id,
			e.account_code,
			e.account_name,
			e.account_nature,
			a.category,
			COALESCE(SUM(e.equivalent_amount) FILTER (WHERE e.side = 'DEBIT'), 0)  AS total_debit,
			COALESCE(SUM(e.equivalent_amount) FILTER (WHERE e.side = 'CREDIT'), 0) AS total_credit
		FROM ledger_entries e
		JOIN accounts a ON a.account_id = e.account_id AND a.company_id = e.company_id
		WHERE e.company_id = $1 AND e.transaction_date <= $2
		GROUP BY e.account_id, e.account_code, e.account_name, e.account_nature, a.category
		ORDER BY e.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.Nature,
			&row.Category,
			&row.TotalDebit,
			&row.TotalCredit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}
