package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelRecurringTemplate converts a domain RecurringTemplate to its model.
func ToModelRecurringTemplate(d domain.RecurringTemplate) models.RecurringTemplate {
	return models.RecurringTemplate{
		TemplateID:            d.TemplateID,
		CompanyID:             d.CompanyID,
		Name:                  d.Name,
		TemplateTransactionID: d.TemplateTransactionID,
		IntervalDays:          d.IntervalDays,
		NextRunDate:           d.NextRunDate,
		IsActive:              d.IsActive,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurringTemplate converts a model RecurringTemplate to its domain type.
func ToDomainRecurringTemplate(m models.RecurringTemplate) domain.RecurringTemplate {
	return domain.RecurringTemplate{
		TemplateID:            m.TemplateID,
		CompanyID:             m.CompanyID,
		Name:                  m.Name,
		TemplateTransactionID: m.TemplateTransactionID,
		IntervalDays:          m.IntervalDays,
		NextRunDate:           m.NextRunDate,
		IsActive:              m.IsActive,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
