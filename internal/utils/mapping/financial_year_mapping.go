package mapping

import (
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/models"
)

// ToModelFinancialYear converts a domain FinancialYear to a model FinancialYear.
func ToModelFinancialYear(d domain.FinancialYear) models.FinancialYear {
	return models.FinancialYear{
		YearID:       d.YearID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		ClosedAt:     d.ClosedAt,
		ClosedBy:     d.ClosedBy,
		ClosingNotes: d.ClosingNotes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialYear converts a model FinancialYear to a domain FinancialYear.
func ToDomainFinancialYear(m models.FinancialYear) domain.FinancialYear {
	return domain.FinancialYear{
		YearID:       m.YearID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		ClosedAt:     m.ClosedAt,
		ClosedBy:     m.ClosedBy,
		ClosingNotes: m.ClosingNotes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
