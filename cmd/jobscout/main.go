package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jobscout"
	"github.com/fwojciec/jobscout/crawl"
	"github.com/fwojciec/jobscout/goquery"
	jobscouthttp "github.com/fwojciec/jobscout/http"
	"github.com/fwojciec/jobscout/rod"
	jobslog "github.com/fwojciec/jobscout/slog"
	"github.com/fwojciec/jobscout/sqlite"
	"github.com/fwojciec/jobscout/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BlueprintService jobscout.BlueprintService
	JobService       jobscout.JobService

	// Browsers launched during the run, closed by Close.
	browsers []*rod.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for _, b := range m.browsers {
		_ = b.Close()
	}
	m.browsers = nil
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobscout"),
		kong.Description("Infer and run parser blueprints for careers pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := jobscout.DefaultConfig()
	if cli.Config != "" {
		if cfg, err = yaml.LoadConfigFile(cli.Config); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", jobscout.ErrorMessage(err))
			return err
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JOBSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.BlueprintService = sqlite.NewBlueprintService(m.DB)
	m.JobService = sqlite.NewJobService(m.DB)
	deps.DB = m.DB
	deps.Blueprints = m.BlueprintService
	deps.Jobs = m.JobService

	parserImpl := goquery.NewParser(cfg)
	deps.Parser = parserImpl
	deps.Validator = goquery.NewValidator(parserImpl)
	deps.Detector = goquery.NewDetector()
	deps.Inferrer = jobslog.NewLoggingInferrer(goquery.NewInferrer(cfg), deps.Logger)
	deps.Fetcher = jobslog.NewLoggingFetcher(
		jobscouthttp.NewFetcher(jobscouthttp.WithTimeout(cli.Timeout)), deps.Logger)
	deps.Limiter = crawl.NewDomainLimiter(1.0)
	deps.NewBrowser = func(settings jobscout.AutomationSettings) (jobscout.Fetcher, error) {
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithAutomation(settings),
			rod.WithStealth(true),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.browsers = append(m.browsers, fetcher)
		return jobslog.NewLoggingFetcher(fetcher, deps.Logger), nil
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("JOBSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobscout.db"
	}
	dir := filepath.Join(home, ".jobscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jobscout.db")
}
