package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/jobscout"
)

// Ensure Exporter implements jobscout.JobWriter at compile time.
var _ jobscout.JobWriter = (*Exporter)(nil)

// Exporter writes one run's jobs so that the output directory is replaced
// all at once. Jobs are written to baseDir/name.tmp and moved to
// baseDir/name on Commit; a failed run calls Abort and leaves the previous
// export untouched.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

// Dir returns the final export directory.
func (e *Exporter) Dir() string {
	return filepath.Join(e.baseDir, e.name)
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

// CreateJob writes job into the pending export.
func (e *Exporter) CreateJob(ctx context.Context, job *jobscout.Job) error {
	return writeJob(e.tempDir(), job)
}

// Commit replaces the previous export with the pending one. A run that
// wrote no jobs commits an empty directory.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.Dir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.Dir())
}

// Abort discards the pending export.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
