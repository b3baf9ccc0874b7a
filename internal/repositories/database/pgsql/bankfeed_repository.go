package pgsql

import (
	"context"
	"errors"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankFeedRepository struct {
	BaseRepository
}

// newPgxBankFeedRepository creates the repository for bank feed items and
// matching rules.
func newPgxBankFeedRepository(pool *pgxpool.Pool) portsrepo.BankFeedRepositoryFacade {
	return &PgxBankFeedRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankFeedRepositoryFacade = (*PgxBankFeedRepository)(nil)

const feedItemColumns = `
	item_id, company_id, bank_account_id, import_batch_id, fit_id,
	posted_date, amount, description, status,
	matched_transaction_id, matched_rule_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanFeedItem(row pgx.Row) (*models.BankFeedItem, error) {
	var m models.BankFeedItem
	err := row.Scan(
		&m.ItemID,
		&m.CompanyID,
		&m.BankAccountID,
		&m.ImportBatchID,
		&m.FitID,
		&m.PostedDate,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.MatchedTransactionID,
		&m.MatchedRuleID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// InsertFeedItems inserts an import batch with ON CONFLICT DO NOTHING on the
// (import_batch_id, fit_id) uniqueness, so re-running an import is harmless.
func (r *PgxBankFeedRepository) InsertFeedItems(ctx context.Context, items []domain.BankFeedItem) (int, int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO bank_feed_items (` + feedItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_id, import_batch_id, fit_id) DO NOTHING;
	`
	imported := 0
	for _, item := range items {
		m := mapping.ToModelBankFeedItem(item)
		tag, err := tx.Exec(ctx, query,
			m.ItemID,
			m.CompanyID,
			m.BankAccountID,
			m.ImportBatchID,
			m.FitID,
			m.PostedDate,
			m.Amount,
			m.Description,
			m.Status,
			m.MatchedTransactionID,
			m.MatchedRuleID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return 0, 0, apperrors.NewAppError(500, "failed to insert feed item "+m.FitID, err)
		}
		imported += int(tag.RowsAffected())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, 0, err
	}
	return imported, len(items) - imported, nil
}

func (r *PgxBankFeedRepository) FindFeedItemByID(ctx context.Context, companyID string, itemID string) (*domain.BankFeedItem, error) {
	query := `
		SELECT ` + feedItemColumns + `
		FROM bank_feed_items
		WHERE company_id = $1 AND item_id = $2;
	`
	m, err := scanFeedItem(r.Pool.QueryRow(ctx, query, companyID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find feed item "+itemID, err)
	}
	item := mapping.ToDomainBankFeedItem(*m)
	return &item, nil
}

func (r *PgxBankFeedRepository) FindFeedItemsByStatus(ctx context.Context, companyID string, bankAccountID string, status domain.BankFeedItemStatus) ([]domain.BankFeedItem, error) {
	query := `
		SELECT ` + feedItemColumns + `
		FROM bank_feed_items
		WHERE company_id = $1 AND bank_account_id = $2 AND status = $3
		ORDER BY posted_date, item_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, bankAccountID, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query feed items", err)
	}
	defer rows.Close()

	var items []models.BankFeedItem
	for rows.Next() {
		m, err := scanFeedItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan feed item row", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating feed item rows", err)
	}
	return mapping.ToDomainBankFeedItemSlice(items), nil
}

func (r *PgxBankFeedRepository) SummarizeUnmatched(ctx context.Context, companyID string) ([]domain.UnmatchedFeedSummary, error) {
	query := `
		SELECT bank_account_id, COUNT(*), COALESCE(SUM(amount), 0), MIN(posted_date)
		FROM bank_feed_items
		WHERE company_id = $1 AND status = 'NEW'
		GROUP BY bank_account_id
		ORDER BY bank_account_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarize unmatched feed items", err)
	}
	defer rows.Close()

	var summaries []domain.UnmatchedFeedSummary
	for rows.Next() {
		var s domain.UnmatchedFeedSummary
		if err := rows.Scan(&s.BankAccountID, &s.Count, &s.TotalAmount, &s.OldestPosted); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan feed summary row", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PgxBankFeedRepository) MarkItemMatched(ctx context.Context, companyID string, itemID string, transactionID string, ruleID *string, updatedBy string) error {
	query := `
		UPDATE bank_feed_items
		SET status = 'MATCHED', matched_transaction_id = $3, matched_rule_id = $4,
		    last_updated_at = NOW(), last_updated_by = $5
		WHERE company_id = $1 AND item_id = $2 AND status = 'NEW';
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, itemID, transactionID, ruleID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark feed item matched "+itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

func (r *PgxBankFeedRepository) MarkItemIgnored(ctx context.Context, companyID string, itemID string, updatedBy string) error {
	query := `
		UPDATE bank_feed_items
		SET status = 'IGNORED', last_updated_at = NOW(), last_updated_by = $3
		WHERE company_id = $1 AND item_id = $2 AND status = 'NEW';
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, itemID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark feed item ignored "+itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

const matchRuleColumns = `
	rule_id, company_id, bank_account_id, pattern, account_id, priority, is_enabled,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *PgxBankFeedRepository) SaveRule(ctx context.Context, rule *domain.MatchRule) error {
	m := mapping.ToModelMatchRule(*rule)
	query := `
		INSERT INTO match_rules (` + matchRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RuleID,
		m.CompanyID,
		nullableString(m.BankAccountID),
		m.Pattern,
		m.AccountID,
		m.Priority,
		m.IsEnabled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert match rule "+m.RuleID, err)
	}
	return nil
}

func (r *PgxBankFeedRepository) FindRulesByCompany(ctx context.Context, companyID string) ([]domain.MatchRule, error) {
	query := `
		SELECT ` + matchRuleColumns + `
		FROM match_rules
		WHERE company_id = $1
		ORDER BY priority DESC, rule_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query match rules", err)
	}
	defer rows.Close()

	var rules []models.MatchRule
	for rows.Next() {
		var m models.MatchRule
		var bankAccountID *string
		if err := rows.Scan(
			&m.RuleID,
			&m.CompanyID,
			&bankAccountID,
			&m.Pattern,
			&m.AccountID,
			&m.Priority,
			&m.IsEnabled,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan match rule row", err)
		}
		if bankAccountID != nil {
			m.BankAccountID = *bankAccountID
		}
		rules = append(rules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating match rule rows", err)
	}
	return mapping.ToDomainMatchRuleSlice(rules), nil
}

func (r *PgxBankFeedRepository) SetRuleEnabled(ctx context.Context, companyID string, ruleID string, enabled bool, updatedBy string) error {
	query := `
		UPDATE match_rules
		SET is_enabled = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE company_id = $1 AND rule_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, ruleID, enabled, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to toggle match rule "+ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankFeedRepository) PurgeIgnoredOlderThan(ctx context.Context, cutoffDays int) (int64, error) {
	query := `
		DELETE FROM bank_feed_items
		WHERE status = 'IGNORED' AND last_updated_at < NOW() - make_interval(days => $1);
	`
	tag, err := r.Pool.Exec(ctx, query, cutoffDays)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge ignored feed items", err)
	}
	return tag.RowsAffected(), nil
}
