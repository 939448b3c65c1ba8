package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ybenjamin/patentprobe/internal/config"
	"github.com/ybenjamin/patentprobe/internal/database"
	"github.com/ybenjamin/patentprobe/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [endpoint-label]",
		Short: "Show stored probe runs or the history of one endpoint",
		Long: `History reads the results database written by previous probe runs.

Without arguments it lists all stored runs with their category summaries.
With an endpoint label it shows how that endpoint was classified across
runs, which surfaces endpoints that changed behavior (an API that went
auth-walled, a page that went dark).

Examples:
  # List all stored runs
  patentprobe history

  # Show classification history for one endpoint
  patentprobe history patentsview-search`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Results database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no results database (run 'patentprobe probe' first): %w", err)
	}
	defer db.Close()

	if len(args) == 1 {
		return printEndpointHistory(cmd, db, args[0])
	}
	return printRuns(cmd, db)
}

// printRuns lists all stored probe runs.
func printRuns(cmd *cobra.Command, db *database.ProbeDB) error {
	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored probe runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tDATE\tELAPSED\tSTATUS\tSUMMARY")
	for _, run := range runs {
		status := "complete"
		if run.Cancelled {
			status = "cancelled"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Elapsed,
			status,
			summaryLine(run.CategorySummary),
		)
	}
	return w.Flush()
}

// summaryLine formats a category summary, skipping zero counts.
func summaryLine(summary map[string]int) string {
	parts := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		if n := summary[c.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// printEndpointHistory shows one endpoint's classification across runs.
func printEndpointHistory(cmd *cobra.Command, db *database.ProbeDB, label string) error {
	history, err := db.GetEndpointHistory(cmd.Context(), label)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored results for %q.\n", label)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tDATE\tCATEGORY\tNOTE")
	for _, h := range history {
		note := h.Note
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			h.RunID,
			h.Timestamp.Format("2006-01-02 15:04:05"),
			h.Category,
			note,
		)
	}
	return w.Flush()
}
