package domain

// AccountNature determines which side increases the account's balance.
type AccountNature string

const (
	DebitNormal  AccountNature = "DEBIT_NORMAL"
	CreditNormal AccountNature = "CREDIT_NORMAL"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Account represents a chart-of-accounts entry within the core domain.
// Once referenced by a posted ledger entry only name and status may change;
// code, nature and category are fixed.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`    // FK -> companies.company_id (NON-NULL)
	Code         string          `json:"code"`         // Unique per company
	Name         string          `json:"name"`         // User-defined name
	Nature       AccountNature   `json:"nature"`       // DEBIT_NORMAL or CREDIT_NORMAL
	Category     AccountCategory `json:"category"`     // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // FK -> currencies.code
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Soft delete or status flag
	AuditFields
}
