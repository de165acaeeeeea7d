package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/pipeline"
)

// layoutCommand creates the layout command for computing orbit layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [document.toml|document.json]",
		Short: "Compute an orbit layout from a graph document",
		Long: `Compute an orbit layout from a graph document.

The layout command reads a TOML or JSON graph document, distributes its nodes
onto concentric orbits, and writes one output file per requested format. The
json format writes a <input>.layout.json file that 'render' and 'inspect' can
consume later.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().StringVar(&opts.Name, "name", "", "layout name (default: the document's name)")
	cmd.Flags().BoolVar(&opts.NoCluster, "no-cluster", opts.NoCluster, "skip the clustering pass")
	cmd.Flags().Float64Var(&opts.ComponentGap, "gap", opts.ComponentGap, "gap between disconnected components")
	cmd.Flags().IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "component placement goroutines")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even on a cache hit")

	// Render flags
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "color theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "output units per document unit")
	cmd.Flags().BoolVar(&opts.ShowOrbits, "orbits", opts.ShowOrbits, "draw orbit rings")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw node labels")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "Graphviz engine for dot output (default: pinned neato)")

	return cmd
}

// runLayout runs the full pipeline on the document and writes the artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.DocumentPath = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, format := range opts.Formats {
		if path, ok := written[format]; ok {
			printFile(path)
		}
	}
	printStats(result.Stats.BodyCount, result.Stats.EdgeCount, result.Stats.Components, result.CacheInfo.LayoutHit)

	if jsonPath := written[pipeline.FormatJSON]; jsonPath != "" {
		printNewline()
		printNextStep("Inspect", "orbital inspect "+jsonPath)
	}

	return nil
}
