package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ybenjamin/patentprobe/internal/catalog"
	"github.com/ybenjamin/patentprobe/internal/config"
	"github.com/ybenjamin/patentprobe/internal/database"
	"github.com/ybenjamin/patentprobe/internal/log"
	"github.com/ybenjamin/patentprobe/internal/model"
	"github.com/ybenjamin/patentprobe/internal/pipeline"
	"github.com/ybenjamin/patentprobe/internal/prober"
	"github.com/ybenjamin/patentprobe/internal/report"
)

// NewProbeCmd creates the probe command.
func NewProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe the endpoint catalog and classify each endpoint",
		Long: `Probe fetches every endpoint in the catalog concurrently, classifies
each response, and prints a report with ranked access recommendations.

Classification categories:
- json-api:       HTTP 200 with parseable JSON
- xml-api:        HTTP 200 with well-formed XML
- html-scrapable: HTTP 200 with an HTML page
- auth-required:  HTTP 401 or 403
- unreachable:    transport failure or other HTTP error
- malformed:      claimed a structured format but failed to parse

Examples:
  # Probe the built-in patent-data catalog
  patentprobe probe

  # Probe a custom catalog
  patentprobe probe --catalog endpoints.yaml

  # Output JSON report to a file
  patentprobe probe --json --output report.json

  # Faster, more aggressive run
  patentprobe probe --timeout 5s --concurrency 16`,
		Args: cobra.NoArgs,
		RunE: runProbeCmd,
	}

	// Probe behavior flags
	cmd.Flags().StringP("catalog", "f", "",
		"YAML catalog of endpoints to probe (default: built-in patent-data catalog)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultProbeTimeout,
		"Timeout for each probe request")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent probes")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header for probe requests")
	cmd.Flags().Int64("max-body", config.DefaultMaxBodySize,
		"Maximum response body size in bytes to read")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not persist the report to the results database")

	return cmd
}

// runProbeCmd executes the probe command.
func runProbeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown.
	// Cancellation yields a partial report rather than nothing.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runProbe(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.CatalogFile, err = cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// loadCatalog returns the targets to probe: the catalog file when
// configured, the built-in patent-data catalog otherwise.
func loadCatalog(cfg *config.Config) ([]model.ProbeTarget, error) {
	if cfg.CatalogFile == "" {
		return catalog.Builtin(), nil
	}

	targets, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogFile, err)
	}
	return targets, nil
}

// runProbe executes the probe run.
func runProbe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	targets, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting probe run",
		"targets", len(targets),
		"concurrency", cfg.Concurrency,
		"timeout", cfg.Timeout,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ProbeDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	p := prober.New(
		prober.WithTimeout(cfg.Timeout),
		prober.WithUserAgent(cfg.UserAgent),
		prober.WithMaxBodySize(cfg.MaxBodySize),
		prober.WithLogger(logger),
	)

	runner := pipeline.NewRunner(p,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLogger(logger),
	)

	fmt.Fprintf(os.Stderr, "Probing %d endpoints (concurrency: %d)...\n", len(targets), cfg.Concurrency)
	startTime := time.Now()

	probeReport, err := runner.Run(ctx, targets)
	if err != nil {
		return fmt.Errorf("probe run failed: %w", err)
	}

	elapsed := time.Since(startTime)
	if probeReport.Cancelled {
		fmt.Fprintf(os.Stderr, "Probe run cancelled after %s; reporting partial results\n\n",
			elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(os.Stderr, "Probe run completed in %s\n\n", elapsed.Round(time.Millisecond))
	}

	if err := outputReport(cfg, probeReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// Persist even after cancellation: the partial report is still useful.
	if err := saveReport(context.WithoutCancel(ctx), db, probeReport, logger); err != nil {
		logger.Error("failed to save report", "error", err)
	}

	return nil
}

// outputReport outputs the probe report in the requested format.
func outputReport(cfg *config.Config, probeReport *model.Report) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(probeReport)
	return err
}

// saveReport saves the probe report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.ProbeDB, probeReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	runID, err := db.SaveReport(ctx, probeReport)
	if err != nil {
		return err
	}

	logger.Info("probe report saved to database", "runID", runID)
	return nil
}
