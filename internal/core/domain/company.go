package domain

// Company is the tenant boundary of the system. Every account, financial year
// and ledger entry belongs to exactly one company and is invisible to all others.
type Company struct {
	CompanyID        string `json:"companyID"`        // Primary Key (UUID)
	Name             string `json:"name"`             // Display name
	BaseCurrencyCode string `json:"baseCurrencyCode"` // FK -> currencies.code; equivalents are expressed in this currency
	IsActive         bool   `json:"isActive"`
	AuditFields
}

// Actor identifies the authenticated user performing an operation.
// It is constructed once at the trust boundary (auth middleware) and passed
// down by value; company scoping is never taken from request payloads.
type Actor struct {
	UserID      string `json:"userID"`
	CompanyID   string `json:"companyID"`
	DisplayName string `json:"displayName"`
}
