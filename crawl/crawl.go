// Package crawl runs stored blueprints: it pages through a careers site,
// parses every page with the blueprint's profile, suppresses duplicates,
// optionally enriches postings from their detail pages, and stores the
// resulting jobs.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/bloom"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxPages bounds how many listing pages a paged blueprint walks.
	DefaultMaxPages = 10

	// DefaultConcurrency bounds parallel detail-page fetches.
	DefaultConcurrency = 4

	// expectedJobsPerPage sizes the duplicate filter.
	expectedJobsPerPage = 100

	dedupFalsePositiveRate = 0.001
)

// Runner executes a blueprint against the live site.
type Runner struct {
	Fetcher jobscout.Fetcher
	Parser  jobscout.ProfileParser
	Limiter jobscout.DomainLimiter

	// Jobs receives every new job in page order. Nil skips storage.
	Jobs jobscout.JobWriter

	// Extractor and Converter turn detail pages into Markdown descriptions
	// for profiles with detail fetching enabled.
	Extractor jobscout.Extractor
	Converter jobscout.Converter

	MaxPages    int
	PageSize    int
	Concurrency int
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Result holds the outcome of a run.
type Result struct {
	Jobs       []jobscout.ParsedJob
	Pages      int
	Saved      int
	Duplicates int
	Failed     int
	Bytes      int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type  ProgressType
	Page  int
	URL   string
	Jobs  int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPage
	ProgressFailed
	ProgressDetail
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress. Calls are
// serialized even while detail pages are fetched in parallel.
type ProgressFunc func(event ProgressEvent)

// Run walks bp's listing pages and stores the jobs found.
//
// Paging stops at MaxPages, when the strategy produces a URL already
// visited, when a page fails to load after retries, or when a page yields
// no job that was not seen earlier in the run. A failure on the first page
// is returned as an error; later failures end the walk and are counted.
func (r *Runner) Run(ctx context.Context, bp *jobscout.Blueprint, progress ProgressFunc) (*Result, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	report := r.reporter(progress)

	maxPages := r.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if !bp.Paging.Enabled() {
		maxPages = 1
	}

	report(ProgressEvent{Type: ProgressStarted, URL: bp.EntryURL})

	seen := bloom.NewFilter(uint(maxPages*expectedJobsPerPage), dedupFalsePositiveRate)
	visited := make(map[string]bool)
	result := &Result{}

	for page := 1; page <= maxPages; page++ {
		pageURL := bp.Paging.Apply(bp.EntryURL, page, r.PageSize)
		if visited[pageURL] {
			break
		}
		visited[pageURL] = true

		html, err := r.fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if page == 1 {
				return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
			}
			result.Failed++
			report(ProgressEvent{Type: ProgressFailed, Page: page, URL: pageURL, Error: err})
			break
		}
		result.Pages++
		result.Bytes += len(html)

		jobs, err := r.Parser.Parse(&bp.Profile, html, pageURL)
		if err != nil {
			return nil, err
		}

		fresh := 0
		for _, job := range jobs {
			if seen.Seen(job.Key()) {
				result.Duplicates++
				continue
			}
			result.Jobs = append(result.Jobs, job)
			fresh++
		}
		report(ProgressEvent{Type: ProgressPage, Page: page, URL: pageURL, Jobs: fresh})

		if fresh == 0 {
			break
		}
	}

	if cfg := bp.Profile.DetailFetch; cfg != nil && cfg.Enabled && r.Extractor != nil && r.Converter != nil {
		if err := r.enrich(ctx, cfg, bp.EntryURL, result, report); err != nil {
			return nil, err
		}
	}

	if r.Jobs != nil {
		for i, parsed := range result.Jobs {
			job := &jobscout.Job{
				ParsedJob:   parsed,
				BlueprintID: bp.ID,
				Position:    i,
			}
			if err := r.Jobs.CreateJob(ctx, job); err != nil {
				result.Failed++
				report(ProgressEvent{Type: ProgressFailed, URL: job.URL, Error: fmt.Errorf("storing %q: %w", job.Title, err)})
				continue
			}
			result.Saved++
		}
	}

	report(ProgressEvent{Type: ProgressFinished, Page: result.Pages, Jobs: len(result.Jobs)})

	return result, nil
}

func (r *Runner) fetch(ctx context.Context, pageURL string) (string, error) {
	if err := waitURL(ctx, r.Limiter, pageURL); err != nil {
		return "", err
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, r.Fetcher.Fetch, r.Logf, delays)
}

// enrich replaces each job's description with the Markdown of its detail
// page. Jobs whose detail page cannot be fetched or converted keep the
// description synthesized from the listing.
func (r *Runner) enrich(ctx context.Context, cfg *jobscout.DetailFetchConfig, entryURL string, result *Result, report ProgressFunc) error {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range result.Jobs {
		detailURL := DetailURL(cfg, entryURL, &result.Jobs[i])
		if detailURL == "" {
			continue
		}
		g.Go(func() error {
			markdown, err := r.detail(gctx, detailURL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				mu.Lock()
				result.Failed++
				mu.Unlock()
				report(ProgressEvent{Type: ProgressFailed, URL: detailURL, Error: err})
				return nil
			}
			if markdown != "" {
				result.Jobs[i].Description = markdown
			}
			report(ProgressEvent{Type: ProgressDetail, URL: detailURL})
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) detail(ctx context.Context, detailURL string) (string, error) {
	html, err := r.fetch(ctx, detailURL)
	if err != nil {
		return "", err
	}
	extracted, err := r.Extractor.Extract(html)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", detailURL, err)
	}
	markdown, err := r.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", detailURL, err)
	}
	return strings.TrimSpace(markdown), nil
}

// reporter serializes calls to progress. A nil progress discards events.
func (r *Runner) reporter(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(ProgressEvent) {}
	}
	var mu sync.Mutex
	return func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		progress(event)
	}
}

// DetailURL returns the absolute detail-page URL for job, or "" when the
// configured field is empty. Relative values resolve against cfg.BaseURL,
// falling back to entryURL.
func DetailURL(cfg *jobscout.DetailFetchConfig, entryURL string, job *jobscout.ParsedJob) string {
	value := job.URL
	if cfg.URLField == jobscout.FieldNameExternalID {
		value = job.ExternalID
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	base := cfg.BaseURL
	if base == "" {
		base = entryURL
	}
	if cfg.URLField == jobscout.FieldNameExternalID && cfg.BaseURL != "" && !strings.Contains(value, "://") {
		// External IDs are appended to the base as a path segment.
		return strings.TrimSuffix(cfg.BaseURL, "/") + "/" + url.PathEscape(value)
	}

	ref, err := url.Parse(value)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(ref).String()
}
