package models

import "time"

// FinancialYear mirrors the financial_years table.
type FinancialYear struct {
	YearID       string     `json:"yearID"`
	CompanyID    string     `json:"companyID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	ClosingNotes string     `json:"closingNotes,omitempty"`
	AuditFields
}
