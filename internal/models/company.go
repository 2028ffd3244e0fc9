package models

// Company mirrors the companies table.
type Company struct {
	CompanyID        string `json:"companyID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	IsActive         bool   `json:"isActive"`
	AuditFields
}
