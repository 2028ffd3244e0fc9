package domain

import "time"

// FinancialYear is a company-scoped accounting period. At most one open year
// may cover any given date per company; the period gate enforces this, not a
// database constraint. Closing is terminal; there is no reopening path.
type FinancialYear struct {
	YearID       string     `json:"yearID"`    // Primary Key (UUID)
	CompanyID    string     `json:"companyID"` // FK -> companies.company_id
	Name         string     `json:"name"`      // e.g., "FY 2025-26"
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	ClosingNotes string     `json:"closingNotes,omitempty"`
	AuditFields
}

// Covers reports whether the given date falls within the year's [start, end] range.
func (y FinancialYear) Covers(date time.Time) bool {
	return !date.Before(y.StartDate) && !date.After(y.EndDate)
}
