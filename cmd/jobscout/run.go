package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/crawl"
	"github.com/fwojciec/jobscout/fs"
	"github.com/fwojciec/jobscout/htmltomarkdown"
	"github.com/fwojciec/jobscout/readability"
	"github.com/fwojciec/jobscout/trafilatura"
)

// progressURLWidth bounds the URL printed per page.
const progressURLWidth = 60

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	bp, err := findBlueprint(deps, c.Name)
	if err != nil {
		return err
	}

	fetcher := deps.Fetcher
	if c.Browser || bp.Automation.Enabled {
		if deps.NewBrowser == nil {
			err := jobscout.Errorf(jobscout.EINVALID, "blueprint %q requires a browser", bp.Name)
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
			return err
		}
		if fetcher, err = deps.NewBrowser(bp.Automation); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}

	if err := deps.Jobs.DeleteJobsByBlueprint(deps.Ctx, bp.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	writers := jobWriters{deps.Jobs}
	var exporter *fs.Exporter
	if c.Out != "" {
		exporter = fs.NewExporter(c.Out, fs.Slugify(bp.Name))
		writers = append(writers, exporter)
	}

	runner := &crawl.Runner{
		Fetcher:     fetcher,
		Parser:      deps.Parser,
		Limiter:     deps.Limiter,
		Jobs:        writers,
		Extractor:   newExtractor(c.Extractor, bp.EntryURL),
		Converter:   newConverter(bp.EntryURL),
		MaxPages:    c.Pages,
		Concurrency: c.Concurrency,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, "  "+format+"\n", args...)
		},
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPage:
			fmt.Fprintf(deps.Stdout, "  page %d: %s (%s)\n",
				event.Page, crawl.FormatJobs(event.Jobs), crawl.TruncateURL(event.URL, progressURLWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	fmt.Fprintf(deps.Stdout, "Running blueprint %q\n", bp.Name)
	result, err := runner.Run(deps.Ctx, bp, progress)
	if err != nil {
		if exporter != nil {
			_ = exporter.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	if exporter != nil {
		if err := exporter.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: exporting jobs: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "  Saved %s from %d pages (%s)\n",
		crawl.FormatJobs(result.Saved), result.Pages, crawl.FormatBytes(result.Bytes))
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d duplicates\n", result.Duplicates)
	}
	if exporter != nil {
		fmt.Fprintf(deps.Stdout, "  Exported to %s\n", exporter.Dir())
	}
	return nil
}

// jobWriters stores each job with every writer in order. Later writers see
// the fields assigned by earlier ones.
type jobWriters []jobscout.JobWriter

func (w jobWriters) CreateJob(ctx context.Context, job *jobscout.Job) error {
	for _, writer := range w {
		if err := writer.CreateJob(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

func newExtractor(name, entryURL string) jobscout.Extractor {
	if name == "readability" {
		return readability.NewExtractor().WithPageURL(entryURL)
	}
	return trafilatura.NewExtractor().WithPageURL(entryURL)
}

func newConverter(entryURL string) jobscout.Converter {
	u, err := url.Parse(entryURL)
	if err != nil || !u.IsAbs() {
		return htmltomarkdown.NewConverter()
	}
	return htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(u.Scheme + "://" + u.Host))
}
