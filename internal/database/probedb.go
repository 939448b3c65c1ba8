package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ybenjamin/patentprobe/internal/model"
)

// ProbeDB provides SQLite-based storage for probe runs and their results.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all probe runs rather
// than one file per run. This keeps historical queries (how did this
// endpoint behave last month?) in one place and simplifies backup/restore.
type ProbeDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ProbeDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ProbeDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ProbeDB, error) {
	dbPath := filepath.Join(dbDir, "patentprobe.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections for writes,
	// and it only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pdb := &ProbeDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pdb, nil
}

// Close closes the database connection.
func (pdb *ProbeDB) Close() error {
	return pdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (pdb *ProbeDB) createTables() error {
	schema := `
	-- Probe runs store complete reports as JSON plus a category summary
	CREATE TABLE IF NOT EXISTS probe_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		elapsed_ms INTEGER NOT NULL,
		cancelled INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL,
		category_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON probe_runs(timestamp);

	-- Endpoint results store one row per probed endpoint for history queries
	CREATE TABLE IF NOT EXISTS endpoint_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES probe_runs(id),
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		category TEXT NOT NULL,
		note TEXT,
		discovered INTEGER NOT NULL DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_run ON endpoint_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_label ON endpoint_results(label);
	CREATE INDEX IF NOT EXISTS idx_results_category ON endpoint_results(category);
	`

	_, err := pdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport saves a complete probe report and its per-endpoint rows.
// Returns the run ID assigned to the report.
func (pdb *ProbeDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	summary := make(map[string]int, len(model.Categories))
	for _, c := range model.Categories {
		summary[c.String()] = report.Counts[c]
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // summary is a simple map; Marshal won't fail

	tx, err := pdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	cancelled := 0
	if report.Cancelled {
		cancelled = 1
	}

	res, err := tx.ExecContext(ctx, `
	INSERT INTO probe_runs (elapsed_ms, cancelled, report_json, category_summary)
	VALUES (?, ?, ?, ?)
	`,
		report.Elapsed.Milliseconds(),
		cancelled,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save probe run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, result := range report.Results {
		discovered := 0
		if result.Discovered() {
			discovered = 1
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO endpoint_results (run_id, label, url, category, note, discovered)
		VALUES (?, ?, ?, ?, ?, ?)
		`,
			runID,
			result.Label,
			result.URL,
			result.Category.String(),
			result.Note,
			discovered,
		); err != nil {
			return 0, fmt.Errorf("failed to save endpoint result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit probe run: %w", err)
	}

	return runID, nil
}

// GetLatestReport retrieves the most recent probe report.
// Returns nil without error when no runs have been saved yet.
func (pdb *ProbeDB) GetLatestReport(ctx context.Context) (*model.Report, error) {
	query := `
	SELECT report_json FROM probe_runs
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := pdb.db.QueryRowContext(ctx, query).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get probe report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetReportByID retrieves a probe report by its run ID.
func (pdb *ProbeDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM probe_runs
	WHERE id = ?
	`

	var reportJSON string
	err := pdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get probe report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// RunMetadata contains summary information about a stored probe run.
// This is used for displaying run history without loading full reports.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Timestamp is when the run was saved.
	Timestamp time.Time

	// Elapsed is how long the run took.
	Elapsed time.Duration

	// Cancelled reports whether the run was interrupted.
	Cancelled bool

	// CategorySummary contains endpoint counts keyed by category name.
	CategorySummary map[string]int
}

// ListRuns retrieves metadata for all stored probe runs, newest first.
// This is more efficient than loading full reports when only metadata
// is needed.
func (pdb *ProbeDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, timestamp, elapsed_ms, cancelled, category_summary
	FROM probe_runs
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := pdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list probe runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var elapsedMS int64
		var cancelled int
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &timestamp, &elapsedMS, &cancelled, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		meta.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		meta.Cancelled = cancelled != 0

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.CategorySummary); err != nil {
				meta.CategorySummary = make(map[string]int)
			}
		} else {
			meta.CategorySummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// EndpointHistory represents one stored probe result for an endpoint.
type EndpointHistory struct {
	// RunID is the probe run this result belongs to.
	RunID int64

	// Label is the endpoint label.
	Label string

	// URL is the probed URL.
	URL string

	// Category is the classification the endpoint received.
	Category string

	// Note carries classification detail.
	Note string

	// Discovered reports whether the endpoint was found during a deep scan.
	Discovered bool

	// Timestamp is when the result was saved.
	Timestamp time.Time
}

// GetEndpointHistory retrieves all stored results for an endpoint label,
// newest first. Useful for tracking how an endpoint's behavior changed
// across runs.
func (pdb *ProbeDB) GetEndpointHistory(ctx context.Context, label string) ([]EndpointHistory, error) {
	query := `
	SELECT run_id, label, url, category, note, discovered, timestamp
	FROM endpoint_results
	WHERE label = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := pdb.db.QueryContext(ctx, query, label)
	if err != nil {
		return nil, fmt.Errorf("failed to get endpoint history: %w", err)
	}
	defer rows.Close()

	return scanEndpointRows(rows)
}

// QueryResultsByCategory retrieves all stored results with the given
// category across runs, newest first.
func (pdb *ProbeDB) QueryResultsByCategory(ctx context.Context, category model.Category) ([]EndpointHistory, error) {
	query := `
	SELECT run_id, label, url, category, note, discovered, timestamp
	FROM endpoint_results
	WHERE category = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := pdb.db.QueryContext(ctx, query, category.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	return scanEndpointRows(rows)
}

// scanEndpointRows reads endpoint result rows into EndpointHistory values.
func scanEndpointRows(rows *sql.Rows) ([]EndpointHistory, error) {
	var results []EndpointHistory
	for rows.Next() {
		var h EndpointHistory
		var note sql.NullString
		var discovered int
		var timestamp string

		if err := rows.Scan(&h.RunID, &h.Label, &h.URL, &h.Category, &note, &discovered, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan endpoint result: %w", err)
		}

		h.Note = note.String
		h.Discovered = discovered != 0
		h.Timestamp = parseTimestamp(timestamp)
		results = append(results, h)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
