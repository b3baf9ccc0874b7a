package dto

import "time"

// ReportParams holds the query parameters shared by ledger reports.
// MaxSecurityLevel excludes accounts above the caller's level entirely.
type ReportParams struct {
	AsOf             time.Time `form:"asOf" time_format:"2006-01-02"`
	From             time.Time `form:"from" time_format:"2006-01-02"`
	To               time.Time `form:"to" time_format:"2006-01-02"`
	Department       string    `form:"department"`
	MaxSecurityLevel int       `form:"maxSecurityLevel"`
}

// LedgerEntriesParams holds query parameters for entry range queries.
type LedgerEntriesParams struct {
	AccountID string    `form:"accountID"`
	From      time.Time `form:"from" time_format:"2006-01-02"`
	To        time.Time `form:"to" time_format:"2006-01-02"`
}
