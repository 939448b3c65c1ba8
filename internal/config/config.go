package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultProbeTimeout bounds each individual probe request.
	// Twelve seconds sits in the middle of what the surveyed endpoints
	// need: healthy APIs answer within 2-3 seconds, while overloaded
	// government gateways routinely take 8-10. Anything slower is
	// treated as unreachable for discovery purposes.
	DefaultProbeTimeout = 12 * time.Second

	// DefaultConcurrency is the number of simultaneous in-flight probes.
	// Probing is I/O-bound and targets are independent, so moderate
	// parallelism shortens runs without hammering any single host
	// (targets in the catalog spread across distinct hosts).
	DefaultConcurrency = 8

	// DefaultUserAgent identifies patentprobe in HTTP requests.
	// Using a descriptive User-Agent is good practice and lets endpoint
	// operators identify probe traffic in their logs.
	DefaultUserAgent = "patentprobe/1.0 (+https://github.com/ybenjamin/patentprobe)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB covers any sensible API or page payload while preventing
	// memory exhaustion from bulk-data downloads the catalog touches.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "patentprobe"
)

// Config holds all configuration options for a probe run.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Timeout is the per-probe request timeout. There is no overall run
	// deadline beyond it; worst-case wall-clock time is bounded by
	// ceil(targets/concurrency) * Timeout.
	Timeout time.Duration

	// Concurrency is the number of simultaneous in-flight probes.
	Concurrency int

	// CatalogFile is an optional YAML file defining probe targets.
	// When empty, the built-in patent-data catalog is used.
	CatalogFile string

	// UserAgent is the User-Agent header sent with probe requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory for the SQLite results database.
	// When SaveToDB is true, each run's report is stored there so runs
	// can be compared over time.
	DBDir string

	// SaveToDB indicates whether to persist run reports.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero
// values because most defaults are non-zero. This also documents what
// the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultProbeTimeout,
		Concurrency: DefaultConcurrency,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Validate checks the configuration for invalid values.
// It returns one of the package sentinel errors so callers can use
// errors.Is for programmatic handling.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the XDG data directory for patentprobe.
// On Linux: ~/.local/share/patentprobe
// On macOS: ~/Library/Application Support/patentprobe
// On Windows: %LOCALAPPDATA%\patentprobe
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
