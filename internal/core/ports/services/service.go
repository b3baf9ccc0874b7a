// Package services defines the application service ports consumed by the
// HTTP handlers and the scheduler.
package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Account        AccountService
	Posting        PostingService
	Ledger         LedgerService
	Allocation     AllocationService
	Reconciliation ReconciliationService
	Reporting      ReportingService
	TaxCode        TaxCodeService
	Recurring      RecurringService
	Audit          AuditService
	Scheduler      SchedulerService
}
