package jobscout

import (
	"context"
	"time"
)

// Job is a parsed job record stored for a blueprint run.
type Job struct {
	ParsedJob

	ID          string    `json:"id"`
	BlueprintID string    `json:"blueprintId"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.BlueprintID == "" {
		return Errorf(EINVALID, "job blueprint ID required")
	}
	if j.Title == "" {
		return Errorf(EINVALID, "job title required")
	}
	return nil
}

// JobWriter writes jobs to storage.
type JobWriter interface {
	CreateJob(ctx context.Context, job *Job) error
}

// JobService represents a service for managing stored jobs.
type JobService interface {
	// CreateJob stores a job.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobs retrieves jobs matching the filter, ordered by position.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// DeleteJobsByBlueprint removes all jobs for a blueprint.
	DeleteJobsByBlueprint(ctx context.Context, blueprintID string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	BlueprintID *string `json:"blueprintId"`
	ExternalID  *string `json:"externalId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
