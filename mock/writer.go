package mock

import (
	"context"

	"github.com/fwojciec/jobscout"
)

var _ jobscout.JobWriter = (*JobWriter)(nil)

// JobWriter is a mock implementation of jobscout.JobWriter.
type JobWriter struct {
	CreateJobFn func(ctx context.Context, job *jobscout.Job) error
}

func (w *JobWriter) CreateJob(ctx context.Context, job *jobscout.Job) error {
	return w.CreateJobFn(ctx, job)
}
