package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelTaxCode converts a domain TaxCode to a model TaxCode.
func ToModelTaxCode(d domain.TaxCode) models.TaxCode {
	return models.TaxCode{
		Code:        d.Code,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Rate:        d.Rate,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxCode converts a model TaxCode to a domain TaxCode.
func ToDomainTaxCode(m models.TaxCode) domain.TaxCode {
	return domain.TaxCode{
		Code:        m.Code,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Rate:        m.Rate,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
