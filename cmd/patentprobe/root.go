// Package main provides the entry point for the patentprobe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for patentprobe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patentprobe",
		Short: "Discover and classify patent-data endpoints",
		Long: `Patentprobe probes a catalog of patent-data URLs (USPTO, PatentsView,
EPO, Google Patents and others), classifies each endpoint by how it can be
consumed (JSON API, XML API, scrapable HTML, auth-walled, unreachable, or
malformed), and recommends the best access strategy.

By default the built-in patent-data catalog is probed. Use --catalog to
supply your own list of endpoints.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewProbeCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
