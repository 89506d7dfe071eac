package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// testBlueprint returns a minimal valid blueprint named name.
func testBlueprint(name string) *jobscout.Blueprint {
	return &jobscout.Blueprint{
		Name:     name,
		EntryURL: "https://example.com/careers",
		Profile: jobscout.ParserProfile{
			ListSelector: "html > body > ul > li",
			Fields: map[string]jobscout.ParserField{
				jobscout.FieldNameTitle: {Name: jobscout.FieldNameTitle, Type: jobscout.FieldText, Selector: "a", Required: true},
				jobscout.FieldNameURL:   {Name: jobscout.FieldNameURL, Type: jobscout.FieldAttribute, Selector: "a", Attribute: "href"},
			},
		},
		Paging: jobscout.QueryPaging("page", 1, 1),
	}
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var blueprintCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blueprints").Scan(&blueprintCount)
		require.NoError(t, err)

		var jobCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs").Scan(&jobCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps existing data", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewBlueprintService(db).CreateBlueprint(ctx, testBlueprint("acme")))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		found, err := sqlite.NewBlueprintService(db).FindBlueprints(ctx, jobscout.BlueprintFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
	})
}
