package services

import "context"

// SchedulerService runs the periodic maintenance jobs: stale draft cleanup,
// ignored feed purge, and due recurring templates.
type SchedulerService interface {
	// Start launches the job loops. They stop when ctx is cancelled.
	Start(ctx context.Context)
	// RunRetentionSweep deletes stale drafts and purges old ignored feed
	// items once. Exposed for manual triggering.
	RunRetentionSweep(ctx context.Context) error
	// RunDueTemplates creates and posts transactions for every due recurring
	// template once.
	RunDueTemplates(ctx context.Context) error
}
