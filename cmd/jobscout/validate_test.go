package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/jobscout"
	main "github.com/fwojciec/jobscout/cmd/jobscout"
	"github.com/fwojciec/jobscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports field coverage for a matching page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Blueprints = blueprintsWith(acmeBlueprint())
		deps.Fetcher = staticFetcher(cardList("Backend Engineer", "Product Designer"))

		require.NoError(t, (&main.ValidateCmd{Name: "acme"}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, `Blueprint "acme": 2 jobs`)
		assert.Contains(t, output, "title")
		assert.Contains(t, output, "Backend Engineer")
		assert.Contains(t, output, "OK")
	})

	t.Run("fails when the page no longer matches", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := newDeps(&bytes.Buffer{}, stderr)
		deps.Blueprints = blueprintsWith(acmeBlueprint())
		deps.Fetcher = staticFetcher("<html><body><p>We are not hiring right now.</p></body></html>")

		err := (&main.ValidateCmd{Name: "acme"}).Run(deps)

		assert.Equal(t, jobscout.EINVALID, jobscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no longer matches")
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("validates against a saved file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "careers.html", cardList("Backend Engineer"))
		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Blueprints = blueprintsWith(acmeBlueprint())
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Fatal("file mode must not fetch")
				return "", nil
			},
		}

		require.NoError(t, (&main.ValidateCmd{Name: "acme", File: path}).Run(deps))
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes blueprint when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		blueprints := blueprintsWith(acmeBlueprint())
		blueprints.DeleteBlueprintFn = func(_ context.Context, id string) error {
			deletedID = id
			return nil
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Blueprints: blueprints,
		}

		require.NoError(t, (&main.DeleteCmd{Name: "acme", Force: true}).Run(deps))
		assert.Equal(t, "bp-1", deletedID)
		assert.Contains(t, stdout.String(), `Deleted blueprint "acme"`)
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Blueprints: blueprintsWith(acmeBlueprint()),
		}

		err := (&main.DeleteCmd{Name: "acme"}).Run(deps)

		assert.Equal(t, jobscout.EINVALID, jobscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns not found for unknown blueprint", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Blueprints: blueprintsWith(acmeBlueprint()),
		}

		err := (&main.DeleteCmd{Name: "globex", Force: true}).Run(deps)

		assert.Equal(t, jobscout.ENOTFOUND, jobscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), `blueprint "globex" not found`)
	})
}
