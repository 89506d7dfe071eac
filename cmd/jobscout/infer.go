package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/crawl"
)

// maxSamples bounds the sample titles printed after an inference.
const maxSamples = 5

// Run executes the infer command.
func (c *InferCmd) Run(deps *Dependencies) error {
	html, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return err
	}

	res, err := deps.Inferrer.Infer(c.URL, html)
	if c.Browser && c.File == "" && (err != nil || res.Audit.RequiresBrowser) {
		if rendered, rres, ok := c.render(deps, html, res, err); ok {
			html, res, err = rendered, rres, nil
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		for _, reason := range jobscout.ErrorReasons(err) {
			fmt.Fprintf(deps.Stderr, "  - %s\n", reason)
		}
		switch {
		case jobscout.ErrorCode(err) == jobscout.ECHALLENGE:
			fmt.Fprintln(deps.Stderr, "Hint: Save the page from a browser and pass it with --file")
		case !c.Browser && deps.Detector != nil && deps.Detector.RequiresBrowser(html):
			fmt.Fprintln(deps.Stderr, "Hint: The page is rendered by JavaScript; retry with --browser")
		}
		return err
	}

	if c.DryRun {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if c.Force {
		existing, err := deps.Blueprints.FindBlueprints(deps.Ctx, jobscout.BlueprintFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Blueprints.DeleteBlueprint(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
				return err
			}
		}
	}

	bp := jobscout.NewBlueprint(c.Name, c.URL, res)
	if err := deps.Blueprints.CreateBlueprint(deps.Ctx, bp); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		if jobscout.ErrorCode(err) == jobscout.ECONFLICT {
			fmt.Fprintln(deps.Stderr, "Hint: Use --force to replace it")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created blueprint %q (%s)\n", bp.Name, bp.ID)
	printSummary(deps, res)

	if deps.Validator != nil {
		vr := deps.Validator.Validate(&bp.Profile, html, c.URL)
		fmt.Fprintf(deps.Stdout, "  Found %s\n", crawl.FormatJobs(vr.JobCount))
		for _, job := range vr.Samples[:min(len(vr.Samples), maxSamples)] {
			fmt.Fprintf(deps.Stdout, "    %s\n", job.Title)
		}
	}

	return nil
}

func (c *InferCmd) load(deps *Dependencies) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", c.File, err)
		}
		return string(data), nil
	}
	return deps.Fetcher.Fetch(deps.Ctx, c.URL)
}

// render fetches the page in a headless browser and infers again. The
// rendered result replaces the static one when the static inference failed
// or when rendering exposes more jobs.
func (c *InferCmd) render(deps *Dependencies, static string, res *jobscout.AutoParseResult, inferErr error) (string, *jobscout.AutoParseResult, bool) {
	if deps.NewBrowser == nil {
		return "", nil, false
	}
	browser, err := deps.NewBrowser(jobscout.AutomationSettings{Enabled: true, JavaScript: true})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "skip browser: %v\n", err)
		return "", nil, false
	}
	rendered, err := browser.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "skip browser: %s\n", jobscout.ErrorMessage(err))
		return "", nil, false
	}
	rres, err := deps.Inferrer.Infer(c.URL, rendered)
	if err != nil {
		return "", nil, false
	}
	if inferErr == nil && !crawl.RenderingAddsJobs(deps.Parser, &res.Profile, c.URL, static, rendered) {
		return "", nil, false
	}
	rres.Automation = jobscout.AutomationSettings{
		Enabled:         true,
		JavaScript:      true,
		WaitForSelector: rres.Profile.ListSelector,
	}
	rres.Audit.RequiresBrowser = true
	return rendered, rres, true
}

func printSummary(deps *Dependencies, res *jobscout.AutoParseResult) {
	platform := string(res.Audit.Platform)
	if platform == "" {
		platform = "unknown"
	}
	fmt.Fprintf(deps.Stdout, "  List selector: %s\n", res.Profile.ListSelector)
	fmt.Fprintf(deps.Stdout, "  Platform: %s\n", platform)
	fmt.Fprintf(deps.Stdout, "  Fields: %v\n", res.Profile.FieldNames())
	if res.Paging.Enabled() {
		fmt.Fprintf(deps.Stdout, "  Paging: %s\n", res.Paging.Mode)
	}
	if res.Automation.Enabled {
		fmt.Fprintln(deps.Stdout, "  Requires browser: yes")
	}
}
