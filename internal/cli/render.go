package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// renderCommand creates the render command for rendering saved layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to output formats",
		Long: `Render a computed layout to output formats.

The render command takes a layout.json file (produced by 'layout -f json')
and renders it to SVG, PNG, PDF, or DOT format. The layout contains all
positioning information, so this step is purely about drawing.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "color theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "output units per document unit")
	cmd.Flags().BoolVar(&opts.ShowOrbits, "orbits", opts.ShowOrbits, "draw orbit rings")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw node labels")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "Graphviz engine for dot output (default: pinned neato)")

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		if path, ok := written[format]; ok {
			printFile(path)
		}
	}
	printStats(len(layout.Bodies), len(layout.Edges), layout.Components, cacheHit)

	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte // rendered bytes keyed by format
	formats   []string          // requested formats, in output order
	input     string            // input file path, used to derive output paths
	output    string            // explicit output file or base path, may be empty
}

// writeArtifacts writes one file per requested format and returns the
// written paths keyed by format. The json artifact is written with a
// .layout.json extension so it never clobbers a JSON graph document.
func writeArtifacts(p artifactWriteParams) (map[string]string, error) {
	base := basePath(p.output, p.input)
	written := make(map[string]string, len(p.formats))

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written[format] = path
	}

	return written, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, plus the .layout
// marker so rendering services.layout.json yields services.svg.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., graph.svg, graph.png).
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
