package repositories

// RepositoryProvider bundles every repository implementation for dependency
// injection into the service container.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	CompanyRepo       CompanyRepositoryFacade
	CurrencyRepo      CurrencyRepositoryFacade
	ExchangeRateRepo  ExchangeRateRepositoryFacade
	FinancialYearRepo FinancialYearRepositoryFacade
	LedgerRepo        LedgerRepositoryFacade
	ReportingRepo     ReportingRepositoryFacade
}
