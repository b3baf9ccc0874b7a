package mapping

import (
	"github.com/finbooks/finbooks/internal/core/domain"
	"github.com/finbooks/finbooks/internal/models"
)

// ToModelBankFeedItem converts a domain BankFeedItem to a model BankFeedItem.
func ToModelBankFeedItem(d domain.BankFeedItem) models.BankFeedItem {
	return models.BankFeedItem{
		ItemID:               d.ItemID,
		CompanyID:            d.CompanyID,
		BankAccountID:        d.BankAccountID,
		ImportBatchID:        d.ImportBatchID,
		FitID:                d.FitID,
		PostedDate:           d.PostedDate,
		Amount:               d.Amount,
		Description:          d.Description,
		Status:               models.BankFeedItemStatus(d.Status),
		MatchedTransactionID: d.MatchedTransactionID,
		MatchedRuleID:        d.MatchedRuleID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankFeedItem converts a model BankFeedItem to a domain BankFeedItem.
func ToDomainBankFeedItem(m models.BankFeedItem) domain.BankFeedItem {
	return domain.BankFeedItem{
		ItemID:               m.ItemID,
		CompanyID:            m.CompanyID,
		BankAccountID:        m.BankAccountID,
		ImportBatchID:        m.ImportBatchID,
		FitID:                m.FitID,
		PostedDate:           m.PostedDate,
		Amount:               m.Amount,
		Description:          m.Description,
		Status:               domain.BankFeedItemStatus(m.Status),
		MatchedTransactionID: m.MatchedTransactionID,
		MatchedRuleID:        m.MatchedRuleID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankFeedItemSlice converts a slice of model feed items.
func ToDomainBankFeedItemSlice(ms []models.BankFeedItem) []domain.BankFeedItem {
	ds := make([]domain.BankFeedItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankFeedItem(m)
	}
	return ds
}

// ToModelMatchRule converts a domain MatchRule to a model MatchRule.
func ToModelMatchRule(d domain.MatchRule) models.MatchRule {
	return models.MatchRule{
		RuleID:        d.RuleID,
		CompanyID:     d.CompanyID,
		BankAccountID: d.BankAccountID,
		Pattern:       d.Pattern,
		AccountID:     d.AccountID,
		Priority:      d.Priority,
		IsEnabled:     d.IsEnabled,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMatchRule converts a model MatchRule to a domain MatchRule.
func ToDomainMatchRule(m models.MatchRule) domain.MatchRule {
	return domain.MatchRule{
		RuleID:        m.RuleID,
		CompanyID:     m.CompanyID,
		BankAccountID: m.BankAccountID,
		Pattern:       m.Pattern,
		AccountID:     m.AccountID,
		Priority:      m.Priority,
		IsEnabled:     m.IsEnabled,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMatchRuleSlice converts a slice of model rules.
func ToDomainMatchRuleSlice(ms []models.MatchRule) []domain.MatchRule {
	ds := make([]domain.MatchRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMatchRule(m)
	}
	return ds
}
