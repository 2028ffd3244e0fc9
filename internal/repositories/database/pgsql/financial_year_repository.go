package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	"github.com/mocustoms/ledger_engine/internal/models"
	"github.com/mocustoms/ledger_engine/internal/utils/mapping"
)

const financialYearColumns = `
	year_id, company_id, name, start_date, end_date, is_closed,
	closed_at, closed_by, closing_notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFinancialYearRepository struct {
	BaseRepository
}

// newPgxFinancialYearRepository creates a new repository for financial year data.
func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepositoryFacade {
	return &PgxFinancialYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialYearRepositoryFacade = (*PgxFinancialYearRepository)(nil)

func (r *PgxFinancialYearRepository) SaveFinancialYear(ctx context.Context, year domain.FinancialYear) error {
	m := mapping.ToModelFinancialYear(year)
	query := `
		INSERT INTO financial_years (` + financialYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.YearID,
		m.CompanyID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsClosed,
		m.ClosedAt,
		nullableString(m.ClosedBy),
		nullableString(m.ClosingNotes),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert financial year "+m.YearID, err)
	}
	return nil
}

func (r *PgxFinancialYearRepository) FindYearCoveringDate(ctx context.Context, companyID string, date time.Time) (*domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	return r.queryOneYear(ctx, query, companyID, date)
}

func (r *PgxFinancialYearRepository) FindYearByID(ctx context.Context, companyID, yearID string) (*domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE company_id = $1 AND year_id = $2;
	`
	return r.queryOneYear(ctx, query, companyID, yearID)
}

// FindOverlappingYears retrieves any years whose range intersects [start, end].
func (r *PgxFinancialYearRepository) FindOverlappingYears(ctx context.Context, companyID string, start, end time.Time) ([]domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE company_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date;
	`
	return r.queryYears(ctx, query, companyID, start, end)
}

func (r *PgxFinancialYearRepository) ListFinancialYears(ctx context.Context, companyID string) ([]domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE company_id = $1
		ORDER BY start_date;
	`
	return r.queryYears(ctx, query, companyID)
}

// CloseFinancialYear marks the year closed. The WHERE clause requires the
// year still open, so a concurrent double close loses the race and reports
// a conflict.
func (r *PgxFinancialYearRepository) CloseFinancialYear(ctx context.Context, companyID, yearID, notes, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE financial_years
		SET is_closed = TRUE, closed_at = $1, closed_by = $2, closing_notes = $3,
		    last_updated_at = $1, last_updated_by = $2
		WHERE company_id = $4 AND year_id = $5 AND is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, closedAt, closedBy, nullableString(notes), companyID, yearID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close financial year "+yearID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the year does not exist for this company or it is already closed.
		if _, findErr := r.FindYearByID(ctx, companyID, yearID); findErr != nil {
			return findErr
		}
		return apperrors.NewAppError(409, "financial year "+yearID+" is already closed", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxFinancialYearRepository) queryOneYear(ctx context.Context, query string, args ...interface{}) (*domain.FinancialYear, error) {
	row := r.Pool.QueryRow(ctx, query, args...)
	m, err := scanFinancialYear(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find financial year", err)
	}
	year := mapping.ToDomainFinancialYear(m)
	return &year, nil
}

func (r *PgxFinancialYearRepository) queryYears(ctx context.Context, query string, args ...interface{}) ([]domain.FinancialYear, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query financial years", err)
	}
	defer rows.Close()

	years := []domain.FinancialYear{}
	for rows.Next() {
		m, err := scanFinancialYear(rows.Scan)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan financial year row", err)
		}
		years = append(years, mapping.ToDomainFinancialYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating financial year rows", err)
	}
	return years, nil
}

func scanFinancialYear(scan func(dest ...any) error) (models.FinancialYear, error) {
	var m models.FinancialYear
	var closedBy, closingNotes sql.NullString
	err := scan(
		&m.YearID,
		&m.CompanyID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedAt,
		&closedBy,
		&closingNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.FinancialYear{}, err
	}
	if closedBy.Valid {
		m.ClosedBy = closedBy.String
	}
	if closingNotes.Valid {
		m.ClosingNotes = closingNotes.String
	}
	return m, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
