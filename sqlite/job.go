package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jobscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ jobscout.JobService = (*JobService)(nil)

// JobService implements jobscout.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

const jobColumns = "id, blueprint_id, external_id, title, company, location, url, level, posted_at, tags, description, content_hash, position, fetched_at"

// hashJob computes an xxHash over the job fields that change when a
// posting is edited and returns it as a hex string.
func hashJob(job *jobscout.Job) string {
	h := xxhash.New()
	for _, s := range []string{job.Title, job.Company, job.Location, job.URL, job.Level, job.Description} {
		_, _ = h.WriteString(s)
		_, _ = h.WriteString("\x00")
	}
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, h.Sum64()))
}

// CreateJob stores a job.
func (s *JobService) CreateJob(ctx context.Context, job *jobscout.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.FetchedAt = time.Now().UTC()
	job.ContentHash = hashJob(job)

	tags, err := marshalColumn(job.Tags, "tags")
	if err != nil {
		return err
	}
	var postedAt string
	if job.PostedAt != nil {
		postedAt = job.PostedAt.UTC().Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.BlueprintID, job.ExternalID, job.Title, job.Company, job.Location, job.URL, job.Level,
		postedAt, tags, job.Description, job.ContentHash, job.Position, job.FetchedAt.Format(time.RFC3339))

	return err
}

// FindJobs retrieves jobs matching the filter, ordered by position.
func (s *JobService) FindJobs(ctx context.Context, filter jobscout.JobFilter) ([]*jobscout.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + jobColumns + " FROM jobs WHERE 1=1")

	if filter.BlueprintID != nil {
		query.WriteString(" AND blueprint_id = ?")
		args = append(args, *filter.BlueprintID)
	}
	if filter.ExternalID != nil {
		query.WriteString(" AND external_id = ?")
		args = append(args, *filter.ExternalID)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*jobscout.Job
	for rows.Next() {
		var job jobscout.Job
		var postedAt, tags, fetchedAt string

		if err := rows.Scan(&job.ID, &job.BlueprintID, &job.ExternalID, &job.Title, &job.Company,
			&job.Location, &job.URL, &job.Level, &postedAt, &tags, &job.Description,
			&job.ContentHash, &job.Position, &fetchedAt); err != nil {
			return nil, err
		}

		if postedAt != "" {
			t, err := parseRFC3339(postedAt, "posted_at")
			if err != nil {
				return nil, err
			}
			job.PostedAt = &t
		}
		if err := unmarshalColumn(tags, "tags", &job.Tags); err != nil {
			return nil, err
		}
		if job.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// DeleteJobsByBlueprint removes all jobs for a blueprint.
func (s *JobService) DeleteJobsByBlueprint(ctx context.Context, blueprintID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE blueprint_id = ?", blueprintID)
	return err
}
