package models

import "time"

// RecurringTemplate is the DB shape of a recurring posting template.
type RecurringTemplate struct {
	TemplateID            string    `json:"templateID"`
	CompanyID             string    `json:"companyID"`
	Name                  string    `json:"name"`
	TemplateTransactionID string    `json:"templateTransactionID"`
	IntervalDays          int       `json:"intervalDays"`
	NextRunDate           time.Time `json:"nextRunDate"`
	IsActive              bool      `json:"isActive"`
	AuditFields
}
