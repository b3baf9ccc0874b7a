package domain

import "time"

// RecurringTemplate schedules repeated posting of a template transaction.
// The template itself is an ordinary DRAFT transaction; each run clones it and
// posts the clone through the same posting operations interactive callers use,
// so the correctness guarantees are identical regardless of caller.
type RecurringTemplate struct {
	TemplateID            string    `json:"templateID"` // Primary Key (UUID)
	CompanyID             string    `json:"companyID"`
	Name                  string    `json:"name"`
	TemplateTransactionID string    `json:"templateTransactionID"` // FK -> transactions.transaction_id (must stay DRAFT)
	IntervalDays          int       `json:"intervalDays"`
	NextRunDate           time.Time `json:"nextRunDate"`
	IsActive              bool      `json:"isActive"`
	AuditFields
}

// IsDue reports whether the template should run at the given time.
func (t *RecurringTemplate) IsDue(now time.Time) bool {
	return t.IsActive && !t.NextRunDate.After(now)
}
