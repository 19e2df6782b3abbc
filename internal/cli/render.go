package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
	"github.com/matzehuels/aptgraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format string // dot, svg, or png
	output string // output file (stdout for dot if empty)
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a saved dependency graph as DOT, SVG, or PNG",
		Long: `Render a dependency graph previously saved with "resolve --output".

Examples:
  aptgraph render curl.json --format svg --output curl.svg
  aptgraph render curl.json --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runRender(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "svg", "output format: dot, svg, or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout for dot if empty)")

	return cmd
}

func runRender(ctx context.Context, opts *renderOpts, path string) error {
	logger := loggerFromContext(ctx)

	gj, err := graph.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read graph")
	}
	g := gj.ToDepGraph()
	dot := render.ToDOT(g, rootName(gj))

	var data []byte
	switch opts.format {
	case "dot":
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		data = []byte(dot)
	case "svg":
		if data, err = render.SVG(ctx, dot); err != nil {
			return err
		}
	case "png":
		if data, err = render.PNG(ctx, dot); err != nil {
			return err
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown output format %q (dot, svg, png)", opts.format)
	}

	if opts.output == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "--output is required for %s", opts.format)
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	logger.Infof("Wrote %s (%d bytes)", opts.output, len(data))
	return nil
}

// rootName picks the diagram root: the recorded root if present, otherwise
// the first node.
func rootName(gj graph.Graph) depgraph.Name {
	if gj.Root != "" {
		return depgraph.Name(gj.Root)
	}
	if len(gj.Nodes) > 0 {
		return depgraph.Name(gj.Nodes[0].ID)
	}
	return ""
}
