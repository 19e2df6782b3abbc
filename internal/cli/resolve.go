package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/config"
	"github.com/matzehuels/aptgraph/pkg/depgraph"
	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
	"github.com/matzehuels/aptgraph/pkg/httputil"
	"github.com/matzehuels/aptgraph/pkg/render"
	"github.com/matzehuels/aptgraph/pkg/source"
	"github.com/matzehuels/aptgraph/pkg/source/aptindex"
	"github.com/matzehuels/aptgraph/pkg/source/fixture"
)

const defaultCacheTTL = 24 * time.Hour

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	repo      string // repository URL or local path
	testMode  string // boolean-like token selecting the fixture source
	maxDepth  int    // traversal depth limit (0 = config default)
	suite     string // distribution suite
	component string // repository component
	arch      string // binary architecture
	refresh   bool   // bypass the HTTP cache
	format    string // diagram format: mermaid or dot
	output    string // graph JSON output path (none if empty)
	cfgPath   string // config file override
}

func newResolveCmd() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve <package>",
		Short: "Resolve a package's dependency closure, installation order, and diagram",
		Long: `Resolve the transitive dependency closure of a package.

The dependency source is a Debian-style package index: either downloaded
from a repository URL (<repo>/dists/<suite>/<component>/binary-<arch>/Packages.gz)
or read from a local Packages file. With --test-mode, the repository is a
line-oriented fixture file ("<name>: <dep> <dep>").

Examples:
  aptgraph resolve curl
  aptgraph resolve curl --repo http://archive.ubuntu.com/ubuntu --max-depth 3
  aptgraph resolve A --repo testdata/simple.txt --test-mode true
  aptgraph resolve curl --format dot --output curl.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "repository URL or local index path (default from config)")
	cmd.Flags().StringVar(&opts.testMode, "test-mode", "false", "treat the repository as a fixture file (true/false/1/0)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum dependency depth, root counts as 1 (default from config)")
	cmd.Flags().StringVar(&opts.suite, "suite", "", "distribution suite (default from config)")
	cmd.Flags().StringVar(&opts.component, "component", "", "repository component (default from config)")
	cmd.Flags().StringVar(&opts.arch, "arch", "", "binary architecture (default from config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the HTTP response cache")
	cmd.Flags().StringVar(&opts.format, "format", "mermaid", "diagram format: mermaid or dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the resolved graph as JSON to this file")
	cmd.Flags().StringVar(&opts.cfgPath, "config", "", "config file (default ~/.config/aptgraph/config.toml)")

	return cmd
}

// runResolve validates all inputs, builds the dependency source, runs the
// graph engine, and prints the adjacency listing, installation order, and
// diagram. Validation failures abort before any index is touched.
func runResolve(ctx context.Context, opts *resolveOpts, pkg string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "load config")
	}
	merge(opts, cfg)

	testMode, err := apperrors.ParseBoolToken(opts.testMode)
	if err != nil {
		return err
	}
	if err := apperrors.ValidatePackageName(pkg); err != nil {
		return err
	}
	if err := apperrors.ValidateRepo(opts.repo); err != nil {
		return err
	}
	if err := apperrors.ValidateMaxDepth(opts.maxDepth); err != nil {
		return err
	}
	if opts.format != "mermaid" && opts.format != "dot" {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown diagram format %q (mermaid, dot)", opts.format)
	}

	src, err := buildSource(ctx, opts, cfg, testMode)
	if err != nil {
		return err
	}

	root := depgraph.Name(pkg)
	logger.Infof("Resolving %s (max depth %d)", pkg, opts.maxDepth)

	prog := newProgress(logger)
	g, err := depgraph.Build(ctx, root, src, depgraph.Options{
		MaxDepth: opts.maxDepth,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages with %d dependencies", g.Len(), g.EdgeCount()))

	printGraph(g)
	printOrder(g, root)
	printDiagram(g, root, opts.format)

	if opts.output != "" {
		if err := graph.FromDepGraph(g, root).WriteFile(opts.output); err != nil {
			return err
		}
		logger.Infof("Wrote graph to %s", opts.output)
	}
	return nil
}

// merge fills unset flags from the config file.
func merge(opts *resolveOpts, cfg config.Config) {
	if opts.repo == "" {
		opts.repo = cfg.Repo
	}
	if opts.suite == "" {
		opts.suite = cfg.Suite
	}
	if opts.component == "" {
		opts.component = cfg.Component
	}
	if opts.arch == "" {
		opts.arch = cfg.Arch
	}
	if opts.maxDepth == 0 {
		opts.maxDepth = cfg.MaxDepth
	}
}

// buildSource constructs the dependency source: a fixture file in test mode,
// otherwise the package index loaded from the repository. The returned
// source memoizes lookups for the lifetime of this run only.
func buildSource(ctx context.Context, opts *resolveOpts, cfg config.Config, testMode bool) (depgraph.Source, error) {
	if testMode {
		fx, err := fixture.ParseFile(opts.repo)
		if err != nil {
			return nil, err
		}
		return source.NewMemo(fx), nil
	}

	ttl := defaultCacheTTL
	if cfg.CacheTTL != "" {
		if d, err := time.ParseDuration(cfg.CacheTTL); err == nil {
			ttl = d
		}
	}
	cache, err := httputil.NewCache(cfg.CacheDir, ttl)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "init cache")
	}

	client := aptindex.NewClient(cache.Namespace("index:"))
	idx, err := client.LoadIndex(ctx, opts.repo, aptindex.IndexOptions{
		Suite:     opts.suite,
		Component: opts.component,
		Arch:      opts.arch,
		Refresh:   opts.refresh,
	})
	if err != nil {
		return nil, err
	}
	return source.NewMemo(aptindex.NewSource(idx)), nil
}

func printGraph(g *depgraph.Graph) {
	printTitle("Dependency graph")
	for _, pkg := range g.Packages() {
		deps, _ := g.Deps(pkg)
		if len(deps) == 0 {
			fmt.Printf("%s: %s\n", pkg, styleDim.Render("(none)"))
			continue
		}
		names := make([]string, len(deps))
		for i, d := range deps {
			names[i] = string(d)
		}
		fmt.Printf("%s: %s\n", pkg, strings.Join(names, ", "))
	}
	fmt.Println()
}

func printOrder(g *depgraph.Graph, root depgraph.Name) {
	printTitle("Installation order")
	order, err := depgraph.Order(g, root)
	if err != nil {
		printWarning("no valid installation order: dependency cycle detected")
		fmt.Println()
		return
	}
	for _, pkg := range order {
		fmt.Printf(" %s %s\n", styleHighlight.Render(iconArrow), pkg)
	}
	fmt.Println()
}

func printDiagram(g *depgraph.Graph, root depgraph.Name, format string) {
	printTitle("Diagram (%s)", format)
	switch format {
	case "dot":
		fmt.Print(render.ToDOT(g, root))
	default:
		fmt.Print(render.Mermaid(g, root))
	}
}
