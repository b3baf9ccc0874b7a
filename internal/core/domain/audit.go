package domain

import "time"

// AuditAction identifies the financial operation an audit event records.
type AuditAction string

const (
	AuditPosted    AuditAction = "POSTED"
	AuditVoided    AuditAction = "VOIDED"
	AuditAllocated AuditAction = "ALLOCATED"
	AuditImported  AuditAction = "FEED_IMPORTED"
	AuditMatched   AuditAction = "FEED_MATCHED"
)

// AuditEvent is a fire-and-forget record of a financial operation.
// Failure to persist one is logged and never rolls back the operation itself.
type AuditEvent struct {
	EventID    string      `json:"eventID"` // Primary Key (UUID)
	CompanyID  string      `json:"companyID"`
	Action     AuditAction `json:"action"`
	EntityID   string      `json:"entityID"` // Transaction, allocation or feed item ID
	ActorID    string      `json:"actorID"`
	Detail     string      `json:"detail"`
	OccurredAt time.Time   `json:"occurredAt"`
}
