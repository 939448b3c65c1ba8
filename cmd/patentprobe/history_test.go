package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ybenjamin/patentprobe/internal/database"
	"github.com/ybenjamin/patentprobe/internal/model"
)

// seedHistoryDB creates a database with one stored run for testing.
func seedHistoryDB(t *testing.T) string {
	t.Helper()

	dbDir := t.TempDir()
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	report := model.NewReport()
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

	if _, err := db.SaveReport(context.Background(), report); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	return dbDir
}

// TestHistoryCmd tests the history command.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists stored runs", func(t *testing.T) {
		t.Parallel()

		dbDir := seedHistoryDB(t)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dbDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "RUN") {
			t.Error("expected table header")
		}
		if !strings.Contains(output, "complete") {
			t.Error("expected run status")
		}
		if !strings.Contains(output, "json-api=1") {
			t.Errorf("expected category summary, got %q", output)
		}
	})

	t.Run("shows endpoint history", func(t *testing.T) {
		t.Parallel()

		dbDir := seedHistoryDB(t)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dbDir, "patentsview-search"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "json-api") {
			t.Error("expected category in history output")
		}
		if !strings.Contains(output, "valid JSON") {
			t.Error("expected note in history output")
		}
	})

	t.Run("reports unknown endpoint", func(t *testing.T) {
		t.Parallel()

		dbDir := seedHistoryDB(t)

		var buf bytes.Buffer
		cmd := NewHistoryCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dbDir, "nonexistent"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No stored results") {
			t.Error("expected message for unknown endpoint")
		}
	})

	t.Run("fails without a database", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs([]string{"--db-dir", filepath.Join(t.TempDir(), "empty")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error when database does not exist")
		}
	})
}
