package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCatalogCmd tests the catalog command.
func TestCatalogCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints builtin catalog", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewCatalogCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "LABEL") {
			t.Error("expected table header")
		}
		if !strings.Contains(output, "patentsview-search") {
			t.Error("expected built-in endpoint in output")
		}
		if !strings.Contains(output, "endpoints") {
			t.Error("expected endpoint count line")
		}
	})

	t.Run("prints custom catalog", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := `targets:
  - label: custom-api
    url: https://api.example.gov/v1/
    variant: deep-scan
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write catalog: %v", err)
		}

		var buf bytes.Buffer
		cmd := NewCatalogCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--catalog", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "custom-api") {
			t.Error("expected custom endpoint in output")
		}
		if !strings.Contains(output, "deep-scan") {
			t.Error("expected variant in output")
		}
		if strings.Contains(output, "patentsview-search") {
			t.Error("custom catalog should replace the built-in one")
		}
	})

	t.Run("fails on missing catalog file", func(t *testing.T) {
		t.Parallel()

		cmd := NewCatalogCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs([]string{"--catalog", filepath.Join(t.TempDir(), "missing.yaml")})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing catalog file")
		}
	})

	t.Run("fails on invalid catalog file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		content := `targets:
  - label: dup
    url: https://a.example.gov/
  - label: dup
    url: https://b.example.gov/
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write catalog: %v", err)
		}

		cmd := NewCatalogCmd()
		cmd.SetOut(bytes.NewBuffer(nil))
		cmd.SetErr(bytes.NewBuffer(nil))
		cmd.SetArgs([]string{"--catalog", path})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for duplicate labels")
		}
	})
}
