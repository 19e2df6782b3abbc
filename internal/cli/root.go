// Package cli implements the aptgraph command-line interface.
//
// This package provides commands for resolving the transitive dependency
// closure of a package from a Debian-style package index, rendering saved
// closures as diagrams, and managing the HTTP response cache. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
//   - resolve: Build the dependency closure, installation order, and diagram
//   - render: Re-render a saved closure as DOT, SVG, or PNG
//   - cache: Manage the HTTP response cache
//   - completion: Generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/buildinfo"
)

// Execute runs the aptgraph CLI and returns an error if any command fails.
// Components below this point never terminate the process; the exit decision
// belongs to the caller in cmd/aptgraph.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "aptgraph",
		Short: "aptgraph resolves and visualizes APT package dependency closures",
		Long: `aptgraph resolves the transitive dependency closure of a package from a
Debian-style package index, detects dependency cycles, computes a valid
installation order, and renders the closure as a directed-graph diagram.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
