package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// validateCommand creates the validate command for checking graph documents.
func (c *CLI) validateCommand() *cobra.Command {
	var noCluster bool

	cmd := &cobra.Command{
		Use:   "validate [document.toml|document.json]",
		Short: "Check a graph document without writing output",
		Long: `Check a graph document without writing output.

The validate command decodes the document and runs the full distribution
pass, so it catches everything 'layout' would: syntax errors, duplicate or
missing ids, invalid radii, and links to nodes that are never declared.
Nothing is written and nothing is cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], noCluster)
		},
	}

	cmd.Flags().BoolVar(&noCluster, "no-cluster", false, "skip the clustering pass")

	return cmd
}

// runValidate decodes the document, distributes it, and reports the result.
func (c *CLI) runValidate(input string, noCluster bool) error {
	opts := pipeline.Options{
		DocumentPath: input,
		NoCluster:    noCluster,
		Logger:       c.Logger,
	}

	prog := newProgress(c.Logger)

	doc, _, err := pipeline.Decode(opts)
	if err != nil {
		return err
	}

	layout, err := pipeline.ComputeLayout(doc, opts)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Validated %d nodes", len(doc.Nodes)))

	name := doc.Name
	if name == "" {
		name = input
	}

	printSuccess("Document is valid")
	printKeyValue("Document", name)
	fmt.Println(validateReport(doc, layout))

	return nil
}

// validateReport renders the summary table for a validated document.
func validateReport(doc *graph.Document, l graph.Layout) string {
	clusters := 0
	for _, b := range l.Bodies {
		if len(b.Members) > 0 {
			clusters++
		}
	}

	rows := [][]string{
		{"Nodes", fmt.Sprintf("%d", len(doc.Nodes))},
		{"Bodies", fmt.Sprintf("%d", len(l.Bodies))},
		{"Clusters", fmt.Sprintf("%d", clusters)},
		{"Edges", fmt.Sprintf("%d", len(l.Edges))},
		{"Components", fmt.Sprintf("%d", l.Components)},
		{"Frame", fmt.Sprintf("%.1f × %.1f", l.Width, l.Height)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return StyleNumber
		})

	return t.Render()
}
