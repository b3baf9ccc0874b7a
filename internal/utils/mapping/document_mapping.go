package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelDocument converts a domain Document to a model Document.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:       d.DocumentID,
		CompanyID:        d.CompanyID,
		Kind:             models.DocumentKind(d.Kind),
		TransactionID:    d.TransactionID,
		CounterpartyName: d.CounterpartyName,
		IssueDate:        d.IssueDate,
		DueDate:          d.DueDate,
		Total:            d.Total,
		AmountPaid:       d.AmountPaid,
		Status:           models.DocumentStatus(d.Status),
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:       m.DocumentID,
		CompanyID:        m.CompanyID,
		Kind:             domain.DocumentKind(m.Kind),
		TransactionID:    m.TransactionID,
		CounterpartyName: m.CounterpartyName,
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		Total:            m.Total,
		AmountPaid:       m.AmountPaid,
		Status:           domain.DocumentStatus(m.Status),
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocation converts a model Allocation to a domain Allocation.
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID:      m.AllocationID,
		CompanyID:         m.CompanyID,
		CashTransactionID: m.CashTransactionID,
		DocumentID:        m.DocumentID,
		Amount:            m.Amount,
		AllocatedAt:       m.AllocatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ToDomainAllocationSlice converts a slice of model allocations.
func ToDomainAllocationSlice(ms []models.Allocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
