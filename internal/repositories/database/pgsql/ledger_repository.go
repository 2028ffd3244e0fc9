package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	"github.com/mocustoms/ledger_engine/internal/models"
	"github.com/mocustoms/ledger_engine/internal/utils/mapping"
	"github.com/mocustoms/ledger_engine/internal/utils/pagination"
)

const pgUniqueViolationCode = "23505"

const ledgerEntryColumns = `
	entry_id, posting_group_id, company_id, reference_number, transaction_type,
	transaction_name, line_no, account_id, account_code, account_name,
	account_nature, side, amount, currency_code, exchange_rate,
	equivalent_amount, transaction_date, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SavePostingGroup persists every entry of the group inside one database
// transaction. The financial period is re-validated here so a year close
// racing with the posting cannot slip entries into a closed period, and a
// concurrent insert of the same (company, reference, type) resolves to the
// already-persisted group's ID.
func (r *PgxLedgerRepository) SavePostingGroup(ctx context.Context, group domain.PostingGroup) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// Idempotency pre-check inside the transaction.
	existingID, err := r.findExistingGroupID(ctx, tx, group.CompanyID, group.ReferenceNumber, group.TransactionType)
	if err != nil {
		return "", err
	}
	if existingID != "" {
		return existingID, nil
	}

	// Period re-check for every distinct transaction date in the group.
	seenDates := make(map[string]struct{}, len(group.Entries))
	for _, entry := range group.Entries {
		key := entry.TransactionDate.Format(time.DateOnly)
		if _, ok := seenDates[key]; ok {
			continue
		}
		seenDates[key] = struct{}{}
		if err := r.assertPeriodOpenInTx(ctx, tx, group.CompanyID, entry.TransactionDate); err != nil {
			return "", err
		}
	}

	insertQuery := `
		INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	batch := &pgx.Batch{}
	for _, entry := range group.Entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(insertQuery,
			m.EntryID,
			m.PostingGroupID,
			m.CompanyID,
			m.ReferenceNumber,
			m.TransactionType,
			m.TransactionName,
			m.LineNo,
			m.AccountID,
			m.AccountCode,
			m.AccountName,
			m.AccountNature,
			m.Side,
			m.Amount,
			m.CurrencyCode,
			m.ExchangeRate,
			m.EquivalentAmount,
			m.TransactionDate,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			// Someone else inserted the same business event between our
			// pre-check and the batch. Their group wins.
			_ = r.Rollback(ctx, tx)
			return r.lookupSurvivingGroupID(ctx, group.CompanyID, group.ReferenceNumber, group.TransactionType)
		}
		return "", apperrors.NewAppError(500, "failed to insert ledger entries for reference "+group.ReferenceNumber, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return group.PostingGroupID, nil
}

// findExistingGroupID looks up the group ID already stored for the key, if any.
func (r *PgxLedgerRepository) findExistingGroupID(ctx context.Context, tx pgx.Tx, companyID, referenceNumber string, transactionType domain.TransactionType) (string, error) {
	query := `
		SELECT posting_group_id
		FROM ledger_entries
		WHERE company_id = $1 AND reference_number = $2 AND transaction_type = $3
		LIMIT 1;
	`
	var groupID string
	err := tx.QueryRow(ctx, query, companyID, referenceNumber, string(transactionType)).Scan(&groupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperrors.NewAppError(500, "failed to check for existing posting group", err)
	}
	return groupID, nil
}

func (r *PgxLedgerRepository) lookupSurvivingGroupID(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (string, error) {
	query := `
		SELECT posting_group_id
		FROM ledger_entries
		WHERE company_id = $1 AND reference_number = $2 AND transaction_type = $3
		LIMIT 1;
	`
	var groupID string
	err := r.Pool.QueryRow(ctx, query, companyID, referenceNumber, string(transactionType)).Scan(&groupID)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to resolve surviving posting group", err)
	}
	return groupID, nil
}

// assertPeriodOpenInTx verifies, inside the posting transaction, that an open
// financial year covers the date.
func (r *PgxLedgerRepository) assertPeriodOpenInTx(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) error {
	query := `
		SELECT is_closed
		FROM financial_years
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	var isClosed bool
	err := tx.QueryRow(ctx, query, companyID, date).Scan(&isClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(422, "no financial period covers date "+date.Format(time.DateOnly), apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to re-check financial period", err)
	}
	if isClosed {
		// Same status as the service-level period gate, so the caller sees
		// one outcome no matter which check catches a concurrent close.
		return apperrors.NewAppError(422, "financial period covering "+date.Format(time.DateOnly)+" is closed", apperrors.ErrConflict)
	}
	return nil
}

// FindGroupByReference retrieves the posting group for the key, entries
// ordered by line number.
func (r *PgxLedgerRepository) FindGroupByReference(ctx context.Context, companyID, referenceNumber string, transactionType domain.TransactionType) (*domain.PostingGroup, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND reference_number = $2 AND transaction_type = $3
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, referenceNumber, string(transactionType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posting group "+referenceNumber, err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &domain.PostingGroup{
		PostingGroupID:  entries[0].PostingGroupID,
		CompanyID:       companyID,
		ReferenceNumber: referenceNumber,
		TransactionType: transactionType,
		Entries:         entries,
	}, nil
}

// FindEntriesByReference retrieves all entries sharing a reference number,
// across transaction types, ordered by type and line number.
func (r *PgxLedgerRepository) FindEntriesByReference(ctx context.Context, companyID, referenceNumber string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND reference_number = $2
		ORDER BY transaction_type, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, referenceNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for reference "+referenceNumber, err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return entries, nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND entry_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entry "+entryID, err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

// ListEntriesByAccount retrieves a paginated page of an account's entries
// using token-based cursor pagination. Ordering must be stable: transaction
// date descending with created_at as the tie-breaker.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{companyID, accountID}

	var query string
	if nextToken != nil && *nextToken != "" {
		lastTxDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastTxDate, lastCreatedAt)
		query = baseQuery + ` AND (transaction_date, created_at) < ($3, $4) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	} else {
		query = baseQuery + ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	}
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// ListGroups retrieves a page of a company's posting groups, newest first.
// Entries are not loaded; callers wanting them fetch the group by reference.
func (r *PgxLedgerRepository) ListGroups(ctx context.Context, companyID string, limit, offset int) ([]domain.PostingGroup, error) {
	query := `
		SELECT posting_group_id, reference_number, transaction_type
		FROM ledger_entries
		WHERE company_id = $1
		GROUP BY posting_group_id, reference_number, transaction_type
		ORDER BY MAX(created_at) DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posting groups", err)
	}
	defer rows.Close()

	groups := []domain.PostingGroup{}
	for rows.Next() {
		g := domain.PostingGroup{CompanyID: companyID}
		var transactionType string
		if err := rows.Scan(&g.PostingGroupID, &g.ReferenceNumber, &transactionType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting group row", err)
		}
		g.TransactionType = domain.TransactionType(transactionType)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting group rows", err)
	}
	return groups, nil
}

// CorrectEntryAccount rewrites the entry's account snapshot columns in place.
// Amounts, sides and dates are never touched here.
func (r *PgxLedgerRepository) CorrectEntryAccount(ctx context.Context, companyID, entryID string, account domain.Account, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET account_id = $1, account_code = $2, account_name = $3, account_nature = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $7 AND entry_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Code,
		account.Name,
		string(account.Nature),
		updatedAt,
		updatedBy,
		companyID,
		entryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to correct account for entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanLedgerEntries reads every row into model structs and maps them to the
// domain representation.
func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	modelEntries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.PostingGroupID,
			&m.CompanyID,
			&m.ReferenceNumber,
			&m.TransactionType,
			&m.TransactionName,
			&m.LineNo,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.AccountNature,
			&m.Side,
			&m.Amount,
			&m.CurrencyCode,
			&m.ExchangeRate,
			&m.EquivalentAmount,
			&m.TransactionDate,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}
