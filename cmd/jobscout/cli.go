package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB         *sqlite.DB
	Blueprints jobscout.BlueprintService
	Jobs       jobscout.JobService

	Inferrer  jobscout.ProfileInferrer
	Parser    jobscout.ProfileParser
	Validator jobscout.ProfileValidator
	Detector  jobscout.PlatformDetector

	// Fetcher retrieves pages without running JavaScript.
	Fetcher jobscout.Fetcher
	Limiter jobscout.DomainLimiter

	// NewBrowser starts a headless browser configured with settings. Nil
	// when no browser is available.
	NewBrowser func(settings jobscout.AutomationSettings) (jobscout.Fetcher, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Enable debug logging"`
	Config  string        `type:"existingfile" help:"YAML file overriding discovery weights and location keywords"`
	Timeout time.Duration `default:"10s" help:"Fetch timeout per page"`

	Infer    InferCmd    `cmd:"" help:"Infer a blueprint from a careers page"`
	List     ListCmd     `cmd:"" help:"List all stored blueprints"`
	Show     ShowCmd     `cmd:"" help:"Show a blueprint and its stored jobs"`
	Run      RunCmd      `cmd:"" help:"Run a blueprint and store the jobs it finds"`
	Validate ValidateCmd `cmd:"" help:"Check a blueprint against the live page"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a blueprint and its jobs"`
}

// InferCmd is the "infer" subcommand.
type InferCmd struct {
	Name    string `arg:"" help:"Blueprint name"`
	URL     string `arg:"" help:"Careers page URL"`
	File    string `short:"f" type:"existingfile" help:"Read the page from a saved HTML file instead of fetching it"`
	Browser bool   `short:"b" help:"Also render the page in a headless browser"`
	DryRun  bool   `short:"n" name:"dry-run" help:"Print the inference result without storing a blueprint"`
	Force   bool   `help:"Replace an existing blueprint with the same name"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Blueprint name"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Name        string `arg:"" help:"Blueprint name"`
	Pages       int    `short:"p" default:"10" help:"Maximum listing pages to walk"`
	Out         string `short:"o" type:"path" help:"Also export jobs as Markdown files under this directory"`
	Browser     bool   `short:"b" help:"Render pages in a headless browser"`
	Extractor   string `short:"e" enum:"trafilatura,readability" default:"trafilatura" help:"Detail page extractor (trafilatura, readability)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent detail page fetches"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Name string `arg:"" help:"Blueprint name"`
	File string `short:"f" type:"existingfile" help:"Validate against a saved HTML file instead of the live page"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Blueprint name"`
	Force bool   `help:"Confirm deletion"`
}

// findBlueprint looks up a blueprint by name and reports failures to stderr.
func findBlueprint(deps *Dependencies, name string) (*jobscout.Blueprint, error) {
	blueprints, err := deps.Blueprints.FindBlueprints(deps.Ctx, jobscout.BlueprintFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jobscout.ErrorMessage(err))
		return nil, err
	}
	if len(blueprints) == 0 {
		fmt.Fprintf(deps.Stderr, "error: blueprint %q not found. Use 'jobscout list' to see available blueprints.\n", name)
		return nil, jobscout.Errorf(jobscout.ENOTFOUND, "blueprint %q not found", name)
	}
	return blueprints[0], nil
}
