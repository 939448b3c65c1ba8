package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ybenjamin/patentprobe/internal/catalog"
	"github.com/ybenjamin/patentprobe/internal/model"
)

// NewCatalogCmd creates the catalog command.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective endpoint catalog",
		Long: `Catalog prints the endpoints that the probe command would target,
without probing anything. Useful for reviewing the built-in catalog or
checking that a custom catalog file parses as expected.

Examples:
  # Show the built-in patent-data catalog
  patentprobe catalog

  # Show a custom catalog
  patentprobe catalog --catalog endpoints.yaml`,
		Args: cobra.NoArgs,
		RunE: runCatalogCmd,
	}

	cmd.Flags().StringP("catalog", "f", "",
		"YAML catalog of endpoints (default: built-in patent-data catalog)")

	return cmd
}

// runCatalogCmd executes the catalog command.
func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	catalogFile, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return err
	}

	var targets []model.ProbeTarget
	if catalogFile == "" {
		targets = catalog.Builtin()
	} else {
		targets, err = catalog.Load(catalogFile)
		if err != nil {
			return fmt.Errorf("failed to load catalog %s: %w", catalogFile, err)
		}
	}

	if err := catalog.Validate(targets); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tVARIANT\tHINT\tURL")
	for _, t := range targets {
		url := t.URL
		if len(t.Params) > 0 {
			url = fmt.Sprintf("%s (+%d params)", url, len(t.Params))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Label, t.Variant, t.Hint, url)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d endpoints\n", len(targets))
	return nil
}
