package sync

import "context"

// RunRepository persists reconciliation run records.
type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
}
