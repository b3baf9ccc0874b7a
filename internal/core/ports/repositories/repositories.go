// Package repositories defines the persistence ports of the core. Interfaces
// are split into readers and writers so services can depend on the narrowest
// surface they need; facades recombine them for the provider.
package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	DocumentRepo    DocumentRepositoryFacade
	AllocationRepo  AllocationRepositoryFacade
	BankFeedRepo    BankFeedRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
	TaxCodeRepo     TaxCodeRepositoryFacade
	RecurringRepo   RecurringRepositoryFacade
	AuditRepo       AuditRepositoryFacade
}
