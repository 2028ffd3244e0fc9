package dto

import "github.com/mocustoms/ledger_engine/internal/core/domain"

// CreateCompanyRequest carries the fields needed to provision a new tenant.
type CreateCompanyRequest struct {
	Name             string `json:"name" binding:"required,max=128"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3"`
}

// CompanyResponse is the API representation of a company.
type CompanyResponse struct {
	CompanyID        string `json:"companyID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	IsActive         bool   `json:"isActive"`
}

// ToCompanyResponse converts a domain company to its API representation.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		BaseCurrencyCode: c.BaseCurrencyCode,
		IsActive:         c.IsActive,
	}
}
