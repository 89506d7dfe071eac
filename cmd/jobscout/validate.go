package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/crawl"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	bp, err := findBlueprint(deps, c.Name)
	if err != nil {
		return err
	}

	html, err := c.load(deps, bp)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	vr := deps.Validator.Validate(&bp.Profile, html, bp.EntryURL)

	fmt.Fprintf(deps.Stdout, "Blueprint %q: %s\n", bp.Name, crawl.FormatJobs(vr.JobCount))

	names := make([]string, 0, len(vr.Coverage))
	for name := range vr.Coverage {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cov := vr.Coverage[name]
		line := fmt.Sprintf("  %-12s %d/%d", name, cov.Successes, cov.Inspected)
		if cov.Required {
			line += " required"
		}
		if cov.FirstFailureReason != "" {
			line += " (" + cov.FirstFailureReason + ")"
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	for _, w := range vr.Warnings {
		fmt.Fprintf(deps.Stdout, "  warning: %s\n", w)
	}
	for _, job := range vr.Samples[:min(len(vr.Samples), maxSamples)] {
		fmt.Fprintf(deps.Stdout, "    %s\n", job.Title)
	}

	if !vr.Success {
		err := jobscout.Errorf(jobscout.EINVALID, "blueprint %q no longer matches its page", bp.Name)
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Hint: Run 'jobscout infer %s %s --force' to infer it again\n", bp.Name, bp.EntryURL)
		return err
	}

	fmt.Fprintln(deps.Stdout, "OK")
	return nil
}

func (c *ValidateCmd) load(deps *Dependencies, bp *jobscout.Blueprint) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", c.File, err)
		}
		return string(data), nil
	}
	fetcher := deps.Fetcher
	if bp.Automation.Enabled && deps.NewBrowser != nil {
		browser, err := deps.NewBrowser(bp.Automation)
		if err != nil {
			return "", err
		}
		fetcher = browser
	}
	return fetcher.Fetch(deps.Ctx, bp.EntryURL)
}
