package services

// ServiceContainer bundles every service facade for injection into the
// handler layer.
type ServiceContainer struct {
	Account       AccountSvcFacade
	Company       CompanySvcFacade
	Currency      CurrencySvcFacade
	ExchangeRate  ExchangeRateSvcFacade
	FinancialYear FinancialYearSvcFacade
	Posting       PostingSvcFacade
	Reporting     ReportingSvcFacade
}
