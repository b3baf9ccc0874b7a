package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		CompanyID:              d.CompanyID,
		Type:                   models.TransactionType(d.Type),
		Status:                 models.TransactionStatus(d.Status),
		TransactionDate:        d.TransactionDate,
		Reference:              d.Reference,
		Description:            d.Description,
		CurrencyCode:           d.CurrencyCode,
		OffsetsDocumentID:      d.OffsetsDocumentID,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		VoidReason:             d.VoidReason,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction header.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		CompanyID:              m.CompanyID,
		Type:                   domain.TransactionType(m.Type),
		Status:                 domain.TransactionStatus(m.Status),
		TransactionDate:        m.TransactionDate,
		Reference:              m.Reference,
		Description:            m.Description,
		CurrencyCode:           m.CurrencyCode,
		OffsetsDocumentID:      m.OffsetsDocumentID,
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		VoidReason:             m.VoidReason,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionLine converts a domain line to a model line.
func ToModelTransactionLine(d domain.TransactionLine) models.TransactionLine {
	return models.TransactionLine{
		LineID:        d.LineID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		Direction:     models.LineDirection(d.Direction),
		TaxCode:       d.TaxCode,
		Department:    d.Department,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionLine converts a model line to a domain line.
func ToDomainTransactionLine(m models.TransactionLine) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:        m.LineID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Direction:     domain.LineDirection(m.Direction),
		TaxCode:       m.TaxCode,
		Department:    m.Department,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionLineSlice converts a slice of model lines to domain lines.
func ToDomainTransactionLineSlice(ms []models.TransactionLine) []domain.TransactionLine {
	ds := make([]domain.TransactionLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionLine(m)
	}
	return ds
}
