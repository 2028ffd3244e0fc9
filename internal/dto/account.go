package dto

import (
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// CreateAccountRequest carries the fields needed to create a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code         string                 `json:"code" binding:"required,max=32"`
	Name         string                 `json:"name" binding:"required,max=128"`
	Nature       domain.AccountNature   `json:"nature" binding:"required,accountnature"`
	Category     domain.AccountCategory `json:"category" binding:"required,accountcategory"`
	CurrencyCode string                 `json:"currencyCode" binding:"required,len=3"`
	Description  string                 `json:"description" binding:"max=256"`
}

// UpdateAccountRequest carries the mutable fields of an account. Code, nature
// and category are fixed once the account exists.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=128"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=256"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Nature       string    `json:"nature"`
	Category     string    `json:"category"`
	CurrencyCode string    `json:"currencyCode"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Code:         a.Code,
		Name:         a.Name,
		Nature:       string(a.Nature),
		Category:     string(a.Category),
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
