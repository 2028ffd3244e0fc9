package services

import (
	"time"

	portsrepo "github.com/mocustoms/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// postingTxTimeout bounds the transaction that persists a posting group.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, postingTxTimeout time.Duration) *portssvc.ServiceContainer {
	companySvc := NewCompanyService(repos.CompanyRepo, repos.CurrencyRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.CurrencyRepo)
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	rateSvc := NewExchangeRateService(repos.ExchangeRateRepo, repos.CompanyRepo, repos.CurrencyRepo)
	yearSvc := NewFinancialYearService(repos.FinancialYearRepo)
	postingSvc := NewPostingService(repos.LedgerRepo, accountSvc, rateSvc, yearSvc, companySvc, postingTxTimeout)
	reportingSvc := NewReportingService(repos.ReportingRepo, companySvc)

	return &portssvc.ServiceContainer{
		Account:       accountSvc,
		Company:       companySvc,
		Currency:      currencySvc,
		ExchangeRate:  rateSvc,
		FinancialYear: yearSvc,
		Posting:       postingSvc,
		Reporting:     reportingSvc,
	}
}
