package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	financialYearRepo := newPgxFinancialYearRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		CompanyRepo:       companyRepo,
		CurrencyRepo:      currencyRepo,
		ExchangeRateRepo:  exchangeRateRepo,
		FinancialYearRepo: financialYearRepo,
		LedgerRepo:        ledgerRepo,
		ReportingRepo:     reportingRepo,
	}
}
