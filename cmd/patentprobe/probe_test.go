package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ybenjamin/patentprobe/internal/config"
	"github.com/ybenjamin/patentprobe/internal/model"
)

// TestNewProbeCmd tests the probe command definition.
func TestNewProbeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewProbeCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "probe" {
			t.Errorf("expected use 'probe', got %q", cmd.Use)
		}
	})

	t.Run("defines expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"catalog", "timeout", "concurrency", "user-agent",
			"max-body", "json", "markdown", "output", "no-save",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

// TestBuildConfig tests config construction from command flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewProbeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != config.DefaultProbeTimeout {
			t.Errorf("expected default timeout, got %s", cfg.Timeout)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", cfg.Concurrency)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB by default")
		}
		if cfg.CatalogFile != "" {
			t.Errorf("expected empty catalog file, got %q", cfg.CatalogFile)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewProbeCmd()
		args := []string{
			"--timeout", "5s",
			"--concurrency", "16",
			"--catalog", "custom.yaml",
			"--json",
			"--output", "out.json",
			"--no-save",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %s", cfg.Timeout)
		}
		if cfg.Concurrency != 16 {
			t.Errorf("expected concurrency 16, got %d", cfg.Concurrency)
		}
		if cfg.CatalogFile != "custom.yaml" {
			t.Errorf("expected catalog file, got %q", cfg.CatalogFile)
		}
		if !cfg.JSONReport {
			t.Error("expected JSON report enabled")
		}
		if cfg.ReportFile != "out.json" {
			t.Errorf("expected report file, got %q", cfg.ReportFile)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB disabled with --no-save")
		}
	})

	t.Run("conflicting formats fail validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewProbeCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error for --json with --markdown")
		}
	})
}

// TestLoadCatalog tests catalog source selection.
func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("empty path yields builtin catalog", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		targets, err := loadCatalog(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(targets) == 0 {
			t.Error("expected built-in targets")
		}
	})

	t.Run("loads catalog file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := `targets:
  - label: test-api
    url: https://api.example.gov/search
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write catalog: %v", err)
		}

		cfg := config.NewConfig()
		cfg.CatalogFile = path

		targets, err := loadCatalog(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(targets) != 1 || targets[0].Label != "test-api" {
			t.Errorf("unexpected targets: %v", targets)
		}
	})

	t.Run("missing catalog file fails", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")

		if _, err := loadCatalog(cfg); err == nil {
			t.Error("expected error for missing catalog file")
		}
	})
}

// TestOutputReport tests report output formats and destinations.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	buildReport := func() *model.Report {
		r := model.NewReport()
		r.AddResult(&model.Result{
			Label:    "test-endpoint",
			URL:      "https://api.example.gov/",
			Category: model.CategoryJSONAPI,
			Note:     "valid JSON",
		})
		r.Recommendations = []string{"Prefer direct JSON API access via test-endpoint"}
		return r
	}

	t.Run("writes JSON report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "report.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, buildReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), `"version"`) {
			t.Error("expected versioned JSON report")
		}
		if !strings.Contains(string(data), "test-endpoint") {
			t.Error("expected endpoint in JSON report")
		}
	})

	t.Run("writes markdown report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = path

		if err := outputReport(cfg, buildReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "# Patentprobe Report") {
			t.Error("expected markdown header")
		}
	})

	t.Run("writes simple report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		cfg := config.NewConfig()
		cfg.ReportFile = path

		if err := outputReport(cfg, buildReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "PATENTPROBE REPORT") {
			t.Error("expected simple report header")
		}
	})

	t.Run("report file has restrictive permissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		cfg := config.NewConfig()
		cfg.ReportFile = path

		if err := outputReport(cfg, buildReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat report: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
		}
	})
}
