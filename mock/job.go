package mock

import (
	"context"

	"github.com/fwojciec/jobscout"
)

var _ jobscout.JobService = (*JobService)(nil)

// JobService is a mock implementation of jobscout.JobService.
type JobService struct {
	CreateJobFn             func(ctx context.Context, job *jobscout.Job) error
	FindJobsFn              func(ctx context.Context, filter jobscout.JobFilter) ([]*jobscout.Job, error)
	DeleteJobsByBlueprintFn func(ctx context.Context, blueprintID string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *jobscout.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobs(ctx context.Context, filter jobscout.JobFilter) ([]*jobscout.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) DeleteJobsByBlueprint(ctx context.Context, blueprintID string) error {
	return s.DeleteJobsByBlueprintFn(ctx, blueprintID)
}
