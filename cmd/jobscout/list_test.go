package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/jobscout"
	main "github.com/fwojciec/jobscout/cmd/jobscout"
	"github.com/fwojciec/jobscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists blueprints with ID, name, platform, and URL", func(t *testing.T) {
		t.Parallel()

		blueprints := &mock.BlueprintService{
			FindBlueprintsFn: func(context.Context, jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error) {
				return []*jobscout.Blueprint{
					{ID: "bp-123", Name: "acme", EntryURL: "https://acme.example/careers", Platform: jobscout.PlatformGreenhouse},
					{ID: "bp-456", Name: "globex", EntryURL: "https://globex.example/jobs"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Blueprints: blueprints,
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "bp-123  acme  greenhouse  https://acme.example/careers")
		assert.Contains(t, output, "bp-456  globex  -  https://globex.example/jobs")
	})

	t.Run("shows helpful message when no blueprints exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Blueprints: &mock.BlueprintService{
				FindBlueprintsFn: func(context.Context, jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error) {
					return nil, nil
				},
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "jobscout infer")
	})

	t.Run("reports storage errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Blueprints: &mock.BlueprintService{
				FindBlueprintsFn: func(context.Context, jobscout.BlueprintFilter) ([]*jobscout.Blueprint, error) {
					return nil, errors.New("disk I/O error")
				},
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints blueprint as JSON with stored job count", func(t *testing.T) {
		t.Parallel()

		bp := acmeBlueprint()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Blueprints: blueprintsWith(bp),
			Jobs: &mock.JobService{
				FindJobsFn: func(_ context.Context, filter jobscout.JobFilter) ([]*jobscout.Job, error) {
					require.NotNil(t, filter.BlueprintID)
					assert.Equal(t, "bp-1", *filter.BlueprintID)
					return []*jobscout.Job{{ID: "j1"}, {ID: "j2"}}, nil
				},
			},
		}

		require.NoError(t, (&main.ShowCmd{Name: "acme"}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, `"listSelector": "ul > li"`)
		assert.Contains(t, output, `"entryUrl": "https://acme.example/careers"`)
		assert.Contains(t, output, "2 jobs stored")
	})

	t.Run("suggests a run when no jobs are stored", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Blueprints: blueprintsWith(acmeBlueprint()),
			Jobs: &mock.JobService{
				FindJobsFn: func(context.Context, jobscout.JobFilter) ([]*jobscout.Job, error) {
					return nil, nil
				},
			},
		}

		require.NoError(t, (&main.ShowCmd{Name: "acme"}).Run(deps))
		assert.Contains(t, stdout.String(), "jobscout run")
	})
}
