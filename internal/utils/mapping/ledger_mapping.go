package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		CompanyID:     m.CompanyID,
		AccountID:     m.AccountID,
		TransactionID: m.TransactionID,
		EntryDate:     m.EntryDate,
		AmountDr:      m.AmountDr,
		AmountCr:      m.AmountCr,
		Department:    m.Department,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
