package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// IngestTask wraps one ingestion run. It takes a plain func so the
// tasks package does not depend on the ingest package; the run result
// only matters to the API handler, the task just logs completion.
type IngestTask struct {
	Task
	run func(ctx context.Context) error
}

func NewIngestTask(run func(ctx context.Context) error) *IngestTask {
	return &IngestTask{
		Task: NewTask(TaskTypeIngest),
		run:  run,
	}
}

func (t *IngestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.run(ctx); err != nil {
		return fmt.Errorf("ingestion run failed: %w", err)
	}

	slog.Info("Task completed", "type", t.GetType(), "duration", t.GetDuration())
	return nil
}
