package services

import (
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, schedulerCfg SchedulerConfig) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since most services record through it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo)
	container.Posting = NewPostingService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.DocumentRepo,
		repos.AllocationRepo,
		container.Audit,
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Allocation = NewAllocationService(
		repos.AllocationRepo,
		repos.DocumentRepo,
		repos.TransactionRepo,
		container.Audit,
	)
	container.Reconciliation = NewReconciliationService(
		repos.BankFeedRepo,
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Posting,
		container.Audit,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	container.TaxCode = NewTaxCodeService(repos.TaxCodeRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.TransactionRepo)
	container.Scheduler = NewSchedulerService(
		schedulerCfg,
		repos.TransactionRepo,
		repos.BankFeedRepo,
		repos.RecurringRepo,
		repos.AuditRepo,
		container.Posting,
	)

	return container
}

// Compile-time checks that the implementations satisfy their ports.
var (
	_ portssvc.AccountService        = (*accountService)(nil)
	_ portssvc.PostingService        = (*postingService)(nil)
	_ portssvc.LedgerService         = (*ledgerService)(nil)
	_ portssvc.AllocationService     = (*allocationService)(nil)
	_ portssvc.ReconciliationService = (*reconciliationService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
	_ portssvc.TaxCodeService        = (*taxCodeService)(nil)
	_ portssvc.RecurringService      = (*recurringService)(nil)
	_ portssvc.AuditService          = (*auditService)(nil)
	_ portssvc.SchedulerService      = (*schedulerService)(nil)
)
