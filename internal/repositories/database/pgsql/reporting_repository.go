package pgsql

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates the read-only repository behind the derived
// reports. Every fold excludes accounts whose security level is above the
// caller's; exclusion is total, never partial.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

func (r *reportingRepository) TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.classification,
		       COALESCE(SUM(le.amount_dr), 0) AS debit,
		       COALESCE(SUM(le.amount_cr), 0) AS credit
		FROM accounts a
		LEFT JOIN ledger_entries le
		  ON le.account_id = a.account_id AND le.company_id = a.company_id
		 AND le.entry_date <= $2
		WHERE a.company_id = $1 AND a.security_level <= $3
		GROUP BY a.account_id, a.code, a.name, a.classification
		HAVING COALESCE(SUM(le.amount_dr), 0) <> 0 OR COALESCE(SUM(le.amount_cr), 0) <> 0
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf, maxSecurityLevel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fold trial balance", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.Classification, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// movementRows folds signed net movement per account for the given
// classifications, positive in the account's natural direction.
func (r *reportingRepository) movementRows(ctx context.Context, companyID string, classifications []string, from, to time.Time, department string, maxSecurityLevel int) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.classification,
		       COALESCE(SUM(le.amount_dr - le.amount_cr), 0) AS raw
		FROM accounts a
		JOIN ledger_entries le
		  ON le.account_id = a.account_id AND le.company_id = a.company_id
		WHERE a.company_id = $1
		  AND a.classification = ANY($2)
		  AND a.security_level <= $3
		  AND le.entry_date >= $4 AND le.entry_date <= $5
		  AND ($6 = '' OR le.department = $6)
		GROUP BY a.account_id, a.code, a.name, a.classification
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, classifications, maxSecurityLevel, from, to, department)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fold account movement", err)
	}
	defer rows.Close()

	var result []domain.AccountAmount
	for rows.Next() {
		var aa domain.AccountAmount
		var classification domain.AccountClassification
		var raw decimal.Decimal
		if err := rows.Scan(&aa.AccountID, &aa.Code, &aa.Name, &classification, &raw); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		aa.NetAmount = domain.SignedBalance(raw, classification)
		result = append(result, aa)
	}
	return result, rows.Err()
}

func (r *reportingRepository) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, department string, maxSecurityLevel int) (*domain.PAndLReport, error) {
	income, err := r.movementRows(ctx, companyID, []string{string(domain.Income)}, from, to, department, maxSecurityLevel)
	if err != nil {
		return nil, err
	}
	expenses, err := r.movementRows(ctx, companyID, []string{string(domain.Expense)}, from, to, department, maxSecurityLevel)
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{Income: income, Expenses: expenses, NetProfit: decimal.Zero}
	for _, aa := range income {
		report.NetProfit = report.NetProfit.Add(aa.NetAmount)
	}
	for _, aa := range expenses {
		report.NetProfit = report.NetProfit.Sub(aa.NetAmount)
	}
	return report, nil
}

func (r *reportingRepository) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, maxSecurityLevel int) (*domain.BalanceSheetReport, error) {
	var epoch time.Time
	assets, err := r.movementRows(ctx, companyID, []string{string(domain.Asset)}, epoch, asOf, "", maxSecurityLevel)
	if err != nil {
		return nil, err
	}
	liabilities, err := r.movementRows(ctx, companyID, []string{string(domain.Liability)}, epoch, asOf, "", maxSecurityLevel)
	if err != nil {
		return nil, err
	}
	equity, err := r.movementRows(ctx, companyID, []string{string(domain.Equity)}, epoch, asOf, "", maxSecurityLevel)
	if err != nil {
		return nil, err
	}

	// Retained earnings absorbs lifetime income and expense movement so the
	// sheet balances without a closing process.
	pnl, err := r.ProfitAndLoss(ctx, companyID, epoch, asOf, "", maxSecurityLevel)
	if err != nil {
		return nil, err
	}
	if !pnl.NetProfit.IsZero() {
		equity = append(equity, domain.AccountAmount{
			Code:      "RETAINED",
			Name:      "Retained earnings",
			NetAmount: pnl.NetProfit,
		})
	}

	report := &domain.BalanceSheetReport{Assets: assets, Liabilities: liabilities, Equity: equity}
	for _, aa := range assets {
		report.TotalAssets = report.TotalAssets.Add(aa.NetAmount)
	}
	for _, aa := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(aa.NetAmount)
	}
	for _, aa := range equity {
		report.TotalEquity = report.TotalEquity.Add(aa.NetAmount)
	}
	return report, nil
}

// AgedDocuments buckets current open balances; asOf only anchors the overdue
// buckets, it does not rewind amount_paid to a past state.
func (r *reportingRepository) AgedDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, asOf time.Time, maxSecurityLevel int) (*domain.AgingReport, error) {
	query := `
		SELECT d.counterparty_name, d.due_date, d.total - d.amount_paid AS balance
		FROM documents d
		WHERE d.company_id = $1 AND d.kind = $2 AND d.status = 'POSTED' AND d.amount_paid < d.total
		  AND NOT EXISTS (
		      SELECT 1 FROM transaction_lines l
		      JOIN accounts a ON a.account_id = l.account_id AND a.company_id = d.company_id
		      WHERE l.transaction_id = d.transaction_id AND a.security_level > $3
		  )
		ORDER BY d.counterparty_name, d.due_date;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, kind, maxSecurityLevel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents for aging", err)
	}
	defer rows.Close()

	report := &domain.AgingReport{Kind: kind, AsOf: asOf, Total: decimal.Zero}
	byCounterparty := make(map[string]*domain.AgingRow)
	var order []string
	for rows.Next() {
		var name string
		var dueDate time.Time
		var balance decimal.Decimal
		if err := rows.Scan(&name, &dueDate, &balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan aging row", err)
		}

		row, ok := byCounterparty[name]
		if !ok {
			row = &domain.AgingRow{
				CounterpartyName: name,
				Buckets:          make(map[domain.AgingBucket]decimal.Decimal),
				Total:            decimal.Zero,
			}
			byCounterparty[name] = row
			order = append(order, name)
		}

		bucket := domain.AgingBucketFor(dueDate, asOf)
		row.Buckets[bucket] = row.Buckets[bucket].Add(balance)
		row.Total = row.Total.Add(balance)
		report.Total = report.Total.Add(balance)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating aging rows", err)
	}

	for _, name := range order {
		report.Rows = append(report.Rows, *byCounterparty[name])
	}
	return report, nil
}

// CashflowSummary folds net movement on asset accounts touched by cash
// transactions over the period.
func (r *reportingRepository) CashflowSummary(ctx context.Context, companyID string, from, to time.Time, maxSecurityLevel int) (*domain.CashflowReport, error) {
	query := `
		SELECT a.account_id, a.code, a.name,
		       COALESCE(SUM(le.amount_dr - le.amount_cr), 0) AS net
		FROM accounts a
		JOIN ledger_entries le
		  ON le.account_id = a.account_id AND le.company_id = a.company_id
		JOIN transactions t
		  ON t.transaction_id = le.transaction_id AND t.company_id = le.company_id
		WHERE a.company_id = $1
		  AND a.classification = 'ASSET'
		  AND a.security_level <= $4
		  AND t.type IN ('PAYMENT', 'RECEIPT')
		  AND le.entry_date >= $2 AND le.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to, maxSecurityLevel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fold cashflow", err)
	}
	defer rows.Close()

	report := &domain.CashflowReport{From: from, To: to, NetMovement: decimal.Zero}
	for rows.Next() {
		var aa domain.AccountAmount
		if err := rows.Scan(&aa.AccountID, &aa.Code, &aa.Name, &aa.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cashflow row", err)
		}
		report.Accounts = append(report.Accounts, aa)
		report.NetMovement = report.NetMovement.Add(aa.NetAmount)
	}
	return report, rows.Err()
}

func (r *reportingRepository) BankRegister(ctx context.Context, companyID string, accountID string, from, to time.Time, maxSecurityLevel int) (*domain.BankRegisterReport, error) {
	openingQuery := `
		SELECT COALESCE(SUM(le.amount_dr - le.amount_cr), 0)
		FROM ledger_entries le
		JOIN accounts a
		  ON a.account_id = le.account_id AND a.company_id = le.company_id
		WHERE le.company_id = $1 AND le.account_id = $2 AND le.entry_date < $3
		  AND a.security_level <= $4;
	`
	var opening decimal.Decimal
	if err := r.Pool.QueryRow(ctx, openingQuery, companyID, accountID, from, maxSecurityLevel).Scan(&opening); err != nil {
		return nil, apperrors.NewAppError(500, "failed to fold opening balance for "+accountID, err)
	}

	linesQuery := `
		SELECT le.entry_id, le.transaction_id, le.entry_date, t.description,
		       le.amount_dr, le.amount_cr
		FROM ledger_entries le
		JOIN transactions t
		  ON t.transaction_id = le.transaction_id AND t.company_id = le.company_id
		JOIN accounts a
		  ON a.account_id = le.account_id AND a.company_id = le.company_id
		WHERE le.company_id = $1 AND le.account_id = $2
		  AND le.entry_date >= $3 AND le.entry_date <= $4
		  AND a.security_level <= $5
		ORDER BY le.entry_date, le.created_at, le.entry_id;
	`
	rows, err := r.Pool.Query(ctx, linesQuery, companyID, accountID, from, to, maxSecurityLevel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query register lines for "+accountID, err)
	}
	defer rows.Close()

	report := &domain.BankRegisterReport{
		AccountID: accountID,
		From:      from,
		To:        to,
		Opening:   opening,
		Closing:   opening,
	}
	running := opening
	for rows.Next() {
		var line domain.BankRegisterLine
		if err := rows.Scan(&line.EntryID, &line.TransactionID, &line.EntryDate, &line.Description, &line.AmountDr, &line.AmountCr); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan register line", err)
		}
		running = running.Add(line.AmountDr).Sub(line.AmountCr)
		line.RunningTotal = running
		report.Lines = append(report.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating register lines", err)
	}
	report.Closing = running
	return report, nil
}
