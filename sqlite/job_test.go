package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBlueprint creates a blueprint and returns its ID.
func setupBlueprint(t *testing.T, db *sqlite.DB, name string) string {
	t.Helper()
	bp := testBlueprint(name)
	require.NoError(t, sqlite.NewBlueprintService(db).CreateBlueprint(context.Background(), bp))
	return bp.ID
}

func TestJobService_CreateJob(t *testing.T) {
	t.Parallel()

	t.Run("creates job with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		job := &jobscout.Job{
			ParsedJob:   jobscout.ParsedJob{Title: "Backend Engineer", URL: "https://example.com/jobs/1"},
			BlueprintID: setupBlueprint(t, db, "acme"),
		}

		err := svc.CreateJob(context.Background(), job)
		require.NoError(t, err)

		assert.NotEmpty(t, job.ID)
		assert.Len(t, job.ContentHash, 16)
		assert.False(t, job.FetchedAt.IsZero())
	})

	t.Run("returns error for invalid job", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(setupTestDB(t))

		err := svc.CreateJob(context.Background(), &jobscout.Job{})
		assert.Equal(t, jobscout.EINVALID, jobscout.ErrorCode(err))
	})

	t.Run("returns error for unknown blueprint", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(setupTestDB(t))

		err := svc.CreateJob(context.Background(), &jobscout.Job{
			ParsedJob:   jobscout.ParsedJob{Title: "Backend Engineer"},
			BlueprintID: "missing",
		})
		assert.Error(t, err)
	})

	t.Run("hash changes when content changes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		bpID := setupBlueprint(t, db, "acme")
		a := &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: "Backend Engineer", Location: "Berlin"}, BlueprintID: bpID}
		b := &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: "Backend Engineer", Location: "London"}, BlueprintID: bpID}
		require.NoError(t, svc.CreateJob(context.Background(), a))
		require.NoError(t, svc.CreateJob(context.Background(), b))

		assert.NotEqual(t, a.ContentHash, b.ContentHash)
	})
}

func TestJobService_FindJobs(t *testing.T) {
	t.Parallel()

	t.Run("round-trips all job fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		posted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		job := &jobscout.Job{
			ParsedJob: jobscout.ParsedJob{
				ExternalID:  "REQ-1",
				Title:       "Backend Engineer",
				Company:     "Acme",
				Location:    "Berlin",
				URL:         "https://example.com/jobs/1",
				Level:       "Senior",
				PostedAt:    &posted,
				Tags:        []string{"go", "remote"},
				Description: "Build APIs",
			},
			BlueprintID: setupBlueprint(t, db, "acme"),
			Position:    3,
		}
		require.NoError(t, svc.CreateJob(ctx, job))

		found, err := svc.FindJobs(ctx, jobscout.JobFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, job.ParsedJob, found[0].ParsedJob)
		assert.Equal(t, job.ID, found[0].ID)
		assert.Equal(t, job.ContentHash, found[0].ContentHash)
		assert.Equal(t, 3, found[0].Position)
	})

	t.Run("filters by blueprint and orders by position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		acme := setupBlueprint(t, db, "acme")
		globex := setupBlueprint(t, db, "globex")
		for i, pos := range []int{2, 0, 1} {
			require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{
				ParsedJob:   jobscout.ParsedJob{Title: fmt.Sprintf("Role %d", i)},
				BlueprintID: acme,
				Position:    pos,
			}))
		}
		require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: "Other"}, BlueprintID: globex}))

		found, err := svc.FindJobs(ctx, jobscout.JobFilter{BlueprintID: &acme})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "Role 1", found[0].Title)
		assert.Equal(t, "Role 2", found[1].Title)
		assert.Equal(t, "Role 0", found[2].Title)
	})

	t.Run("filters by external ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		bpID := setupBlueprint(t, db, "acme")
		require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{ExternalID: "a", Title: "First"}, BlueprintID: bpID}))
		require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{ExternalID: "b", Title: "Second"}, BlueprintID: bpID}))

		ext := "b"
		found, err := svc.FindJobs(ctx, jobscout.JobFilter{ExternalID: &ext})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Second", found[0].Title)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		bpID := setupBlueprint(t, db, "acme")
		for i := range 5 {
			require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: fmt.Sprintf("Role %d", i)}, BlueprintID: bpID, Position: i}))
		}

		found, err := svc.FindJobs(ctx, jobscout.JobFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})
}

func TestJobService_DeleteJobsByBlueprint(t *testing.T) {
	t.Parallel()

	t.Run("deletes only jobs of the given blueprint", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewJobService(db)
		ctx := context.Background()
		acme := setupBlueprint(t, db, "acme")
		globex := setupBlueprint(t, db, "globex")
		require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: "Acme role"}, BlueprintID: acme}))
		require.NoError(t, svc.CreateJob(ctx, &jobscout.Job{ParsedJob: jobscout.ParsedJob{Title: "Globex role"}, BlueprintID: globex}))

		require.NoError(t, svc.DeleteJobsByBlueprint(ctx, acme))

		found, err := svc.FindJobs(ctx, jobscout.JobFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Globex role", found[0].Title)
	})
}
