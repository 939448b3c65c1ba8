package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *ProbeDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// sampleReport builds a report with a few results for testing.
func sampleReport() *model.Report {
	report := model.NewReport()
	report.Elapsed = 3 * time.Second
	report.AddResult(&model.Result{
		Label:    "patentsview-search",
		URL:      "https://search.patentsview.org/api/v1/patent/",
		Category: model.CategoryJSONAPI,
		Note:     "valid JSON",
	})
	report.AddResult(&model.Result{
		Label:    "uspto-tsdr",
		URL:      "https://tsdr.uspto.gov/statusview",
		Category: model.CategoryAuthRequired,
		Note:     "HTTP 403",
	})
	report.AddResult(&model.Result{
		Label:    "ppubs-webapp/discovered/0",
		URL:      "https://ppubs.uspto.gov/dirsearch-public/searches/generic",
		Category: model.CategoryJSONAPI,
		Note:     "valid JSON",
	})
	report.Recommendations = []string{
		"Prefer direct JSON API access via patentsview-search",
	}
	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		dbPath := filepath.Join(dbDir, "patentprobe.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected informative error, got %q", err.Error())
		}

		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")

		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db1.Close()

		db2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		defer db2.Close()
	})
}

// TestSaveReport tests report persistence and retrieval.
func TestSaveReport(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		report := sampleReport()

		runID, err := db.SaveReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if runID == 0 {
			t.Error("expected non-zero run ID")
		}

		loaded, err := db.GetReportByID(ctx, runID)
		if err != nil {
			t.Fatalf("failed to load report: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected report, got nil")
		}

		if loaded.TotalResults() != report.TotalResults() {
			t.Errorf("expected %d results, got %d", report.TotalResults(), loaded.TotalResults())
		}
		if loaded.Counts[model.CategoryJSONAPI] != 2 {
			t.Errorf("expected json-api count 2, got %d", loaded.Counts[model.CategoryJSONAPI])
		}
		if len(loaded.Recommendations) != 1 {
			t.Errorf("expected 1 recommendation, got %d", len(loaded.Recommendations))
		}
	})

	t.Run("latest report wins", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		first := sampleReport()
		if _, err := db.SaveReport(ctx, first); err != nil {
			t.Fatalf("failed to save first report: %v", err)
		}

		second := model.NewReport()
		second.AddResult(&model.Result{
			Label:    "only-one",
			URL:      "https://only.example.gov/",
			Category: model.CategoryUnreachable,
			Note:     "HTTP 500",
		})
		if _, err := db.SaveReport(ctx, second); err != nil {
			t.Fatalf("failed to save second report: %v", err)
		}

		latest, err := db.GetLatestReport(ctx)
		if err != nil {
			t.Fatalf("failed to load latest report: %v", err)
		}
		if latest == nil {
			t.Fatal("expected report, got nil")
		}
		if latest.TotalResults() != 1 {
			t.Errorf("expected latest report with 1 result, got %d", latest.TotalResults())
		}
	})

	t.Run("returns nil when no runs stored", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		report, err := db.GetLatestReport(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report != nil {
			t.Error("expected nil report for empty database")
		}

		report, err = db.GetReportByID(context.Background(), 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report != nil {
			t.Error("expected nil report for unknown ID")
		}
	})
}

// TestListRuns tests run metadata listing.
func TestListRuns(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with summaries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		report := sampleReport()
		report.Cancelled = true
		if _, err := db.SaveReport(ctx, report); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		runs, err := db.ListRuns(ctx)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		run := runs[0]
		if !run.Cancelled {
			t.Error("expected run to be marked cancelled")
		}
		if run.Elapsed != 3*time.Second {
			t.Errorf("expected elapsed 3s, got %s", run.Elapsed)
		}
		if run.CategorySummary["json-api"] != 2 {
			t.Errorf("expected json-api summary 2, got %d", run.CategorySummary["json-api"])
		}
		// Zero-count categories appear in the summary too.
		if _, ok := run.CategorySummary["malformed"]; !ok {
			t.Error("expected malformed category in summary")
		}
	})

	t.Run("empty database yields no runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		runs, err := db.ListRuns(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}

// TestEndpointHistory tests per-endpoint history queries.
func TestEndpointHistory(t *testing.T) {
	t.Parallel()

	t.Run("tracks an endpoint across runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.SaveReport(ctx, sampleReport()); err != nil {
			t.Fatalf("failed to save first report: %v", err)
		}

		// Second run where the endpoint went dark.
		second := model.NewReport()
		second.AddResult(&model.Result{
			Label:    "patentsview-search",
			URL:      "https://search.patentsview.org/api/v1/patent/",
			Category: model.CategoryUnreachable,
			Note:     "HTTP 503",
		})
		if _, err := db.SaveReport(ctx, second); err != nil {
			t.Fatalf("failed to save second report: %v", err)
		}

		history, err := db.GetEndpointHistory(ctx, "patentsview-search")
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected 2 history entries, got %d", len(history))
		}
		// Newest first.
		if history[0].Category != "unreachable" {
			t.Errorf("expected newest entry unreachable, got %s", history[0].Category)
		}
		if history[1].Category != "json-api" {
			t.Errorf("expected oldest entry json-api, got %s", history[1].Category)
		}
	})

	t.Run("marks discovered endpoints", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.SaveReport(ctx, sampleReport()); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		history, err := db.GetEndpointHistory(ctx, "ppubs-webapp/discovered/0")
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(history))
		}
		if !history[0].Discovered {
			t.Error("expected entry to be marked as discovered")
		}
	})
}

// TestQueryResultsByCategory tests category-based result queries.
func TestQueryResultsByCategory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.SaveReport(ctx, sampleReport()); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	results, err := db.QueryResultsByCategory(ctx, model.CategoryJSONAPI)
	if err != nil {
		t.Fatalf("failed to query results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 json-api results, got %d", len(results))
	}
	for _, r := range results {
		if r.Category != "json-api" {
			t.Errorf("expected json-api category, got %s", r.Category)
		}
	}

	empty, err := db.QueryResultsByCategory(ctx, model.CategoryMalformed)
	if err != nil {
		t.Fatalf("failed to query results: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no malformed results, got %d", len(empty))
	}
}
