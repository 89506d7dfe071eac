package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkJobInserts simulates storing the results of a multi-page run.
func BenchmarkJobInserts(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	bp := &jobscout.Blueprint{
		Name:     "benchmark",
		EntryURL: "https://example.com/careers",
		Profile: jobscout.ParserProfile{
			ListSelector: "li",
			Fields: map[string]jobscout.ParserField{
				jobscout.FieldNameTitle: {Name: jobscout.FieldNameTitle, Type: jobscout.FieldText, Selector: "a"},
			},
		},
	}
	require.NoError(b, sqlite.NewBlueprintService(db).CreateBlueprint(ctx, bp))
	svc := sqlite.NewJobService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		job := &jobscout.Job{
			ParsedJob: jobscout.ParsedJob{
				Title:       fmt.Sprintf("Engineer %d", i),
				URL:         fmt.Sprintf("https://example.com/jobs/%d", i),
				Tags:        []string{"go", "remote"},
				Description: "Build and operate services.",
			},
			BlueprintID: bp.ID,
			Position:    i,
		}
		if err := svc.CreateJob(ctx, job); err != nil {
			b.Fatal(err)
		}
	}
}
