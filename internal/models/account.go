package models

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

// Account mirrors the accounts table. Column names are spelled out in every
// query; nothing relies on convention-based name guessing.
type Account struct {
	AccountID    string          `json:"accountID"`
	CompanyID    string          `json:"companyID"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Nature       AccountNature   `json:"nature"`
	Category     AccountCategory `json:"category"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
