package dto

import (
	"time"

	"github.com/mocustoms/ledger_engine/internal/core/domain"
)

// CreateFinancialYearRequest carries a new company-scoped accounting period.
type CreateFinancialYearRequest struct {
	Name      string    `json:"name" binding:"required,max=64"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

// CloseFinancialYearRequest carries the closing metadata. Closing is terminal.
type CloseFinancialYearRequest struct {
	ClosingNotes string `json:"closingNotes" binding:"max=512"`
}

// FinancialYearResponse is the API representation of a financial year.
type FinancialYearResponse struct {
	YearID       string     `json:"yearID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosingNotes string     `json:"closingNotes,omitempty"`
}

// ToFinancialYearResponse converts a domain year to its API representation.
func ToFinancialYearResponse(y *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		YearID:       y.YearID,
		Name:         y.Name,
		StartDate:    y.StartDate,
		EndDate:      y.EndDate,
		IsClosed:     y.IsClosed,
		ClosedAt:     y.ClosedAt,
		ClosingNotes: y.ClosingNotes,
	}
}

// ToFinancialYearResponses converts a slice of domain years.
func ToFinancialYearResponses(years []domain.FinancialYear) []FinancialYearResponse {
	out := make([]FinancialYearResponse, len(years))
	for i := range years {
		out[i] = ToFinancialYearResponse(&years[i])
	}
	return out
}
