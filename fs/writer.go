// Package fs exports stored jobs as Markdown files with YAML frontmatter.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/jobscout"
	"gopkg.in/yaml.v3"
)

// maxSlugRunes bounds the title part of an exported file name.
const maxSlugRunes = 60

// Slugify lowercases s and joins its letter and digit runs with hyphens.
// Non-Latin letters are kept.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingHyphen = true
			continue
		}
		hyphen := pendingHyphen && n > 0
		width := 1
		if hyphen {
			width++
		}
		if n+width > maxSlugRunes {
			break
		}
		if hyphen {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		n += width
		pendingHyphen = false
	}
	return b.String()
}

// JobPath returns the file name for job: the title slug followed by the
// external ID slug, e.g. "backend-engineer-req-77.md". Jobs whose title
// has no letters or digits fall back to their position.
func JobPath(job *jobscout.Job) string {
	name := Slugify(job.Title)
	if name == "" {
		name = "job-" + strconv.Itoa(job.Position+1)
	}
	if id := Slugify(job.ExternalID); id != "" {
		name += "-" + id
	}
	return name + ".md"
}

type frontmatter struct {
	Title      string   `yaml:"title"`
	Company    string   `yaml:"company,omitempty"`
	Location   string   `yaml:"location,omitempty"`
	URL        string   `yaml:"url,omitempty"`
	Level      string   `yaml:"level,omitempty"`
	Posted     string   `yaml:"posted,omitempty"`
	Tags       []string `yaml:"tags,omitempty,flow"`
	ExternalID string   `yaml:"external_id,omitempty"`
	Fetched    string   `yaml:"fetched,omitempty"`
}

// FormatJob renders job as Markdown: YAML frontmatter with the structured
// fields followed by the description.
func FormatJob(job *jobscout.Job) (string, error) {
	fm := frontmatter{
		Title:      job.Title,
		Company:    job.Company,
		Location:   job.Location,
		URL:        job.URL,
		Level:      job.Level,
		Tags:       job.Tags,
		ExternalID: job.ExternalID,
	}
	if job.PostedAt != nil {
		fm.Posted = job.PostedAt.Format(time.DateOnly)
	}
	if !job.FetchedAt.IsZero() {
		fm.Fetched = job.FetchedAt.Format(time.DateOnly)
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(job.Description)
	if job.Description != "" && !strings.HasSuffix(job.Description, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Ensure Writer implements jobscout.JobWriter at compile time.
var _ jobscout.JobWriter = (*Writer)(nil)

// Writer writes jobs as Markdown files directly into a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateJob writes job to disk as a Markdown file.
func (w *Writer) CreateJob(ctx context.Context, job *jobscout.Job) error {
	return writeJob(w.baseDir, job)
}

func writeJob(dir string, job *jobscout.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	content, err := FormatJob(job)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, JobPath(job)), []byte(content), 0644)
}
