package mapping

import (
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	"github.com/mocustoms/ledger_engine/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:          d.EntryID,
		PostingGroupID:   d.PostingGroupID,
		CompanyID:        d.CompanyID,
		ReferenceNumber:  d.ReferenceNumber,
		TransactionType:  string(d.TransactionType),
		TransactionName:  d.TransactionName,
		LineNo:           d.LineNo,
		AccountID:        d.AccountID,
		AccountCode:      d.AccountCode,
		AccountName:      d.AccountName,
		AccountNature:    models.AccountNature(d.AccountNature),
		Side:             models.EntrySide(d.Side),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		ExchangeRate:     d.ExchangeRate,
		EquivalentAmount: d.EquivalentAmount,
		TransactionDate:  d.TransactionDate,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:          m.EntryID,
		PostingGroupID:   m.PostingGroupID,
		CompanyID:        m.CompanyID,
		ReferenceNumber:  m.ReferenceNumber,
		TransactionType:  domain.TransactionType(m.TransactionType),
		TransactionName:  m.TransactionName,
		LineNo:           m.LineNo,
		AccountID:        m.AccountID,
		AccountCode:      m.AccountCode,
		AccountName:      m.AccountName,
		AccountNature:    domain.AccountNature(m.AccountNature),
		Side:             domain.EntrySide(m.Side),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		ExchangeRate:     m.ExchangeRate,
		EquivalentAmount: m.EquivalentAmount,
		TransactionDate:  m.TransactionDate,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
