package pgsql

import (
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool),
		DocumentRepo:    newPgxDocumentRepository(dbPool),
		AllocationRepo:  newPgxAllocationRepository(dbPool),
		BankFeedRepo:    newPgxBankFeedRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		TaxCodeRepo:     newPgxTaxCodeRepository(dbPool),
		RecurringRepo:   newPgxRecurringRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
	}
}
