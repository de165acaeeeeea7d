package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing saved layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout interactively",
		Long: `Browse a computed layout interactively.

The inspect command opens a terminal UI over a layout.json file (produced by
'layout -f json'). Bodies are listed from the center outward; the selected
body's links and members are shown below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runInspect loads the layout and runs the TUI.
func (c *CLI) runInspect(ctx context.Context, input string) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	model := newInspectModel(input, layout)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// inspectModel is the bubbletea model for browsing a layout's bodies.
type inspectModel struct {
	Title  string
	Bodies []graph.Body
	Links  map[string][]string
	Cursor int
	Height int
	Offset int
}

// newInspectModel builds the model with bodies sorted from the center outward.
func newInspectModel(path string, l graph.Layout) inspectModel {
	bodies := make([]graph.Body, len(l.Bodies))
	copy(bodies, l.Bodies)
	sort.Slice(bodies, func(i, j int) bool {
		if bodies[i].Orbit != bodies[j].Orbit {
			return bodies[i].Orbit < bodies[j].Orbit
		}
		return bodies[i].ID < bodies[j].ID
	})

	links := make(map[string][]string, len(bodies))
	for _, e := range l.Edges {
		links[e.From] = append(links[e.From], e.To)
		links[e.To] = append(links[e.To], e.From)
	}
	for _, ids := range links {
		sort.Strings(ids)
	}

	title := l.Name
	if title == "" {
		title = path
	}

	return inspectModel{
		Title:  title,
		Bodies: bodies,
		Links:  links,
		Height: 15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Bodies)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout: " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Bodies) {
		end = len(m.Bodies)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		body := m.Bodies[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			body.ID,
			fmt.Sprintf("%.1f", body.Orbit),
			fmt.Sprintf("%.1f, %.1f", body.X, body.Y),
			fmt.Sprintf("%.1f", body.Radius),
			fmt.Sprintf("%d", len(m.Links[body.ID])),
			fmt.Sprintf("%d", len(body.Members)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Body", "Orbit", "Position", "Radius", "Links", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Bodies))))

	return b.String()
}

// detailView describes the body under the cursor.
func (m inspectModel) detailView() string {
	if len(m.Bodies) == 0 {
		return listDimStyle.Render("  (empty layout)")
	}
	body := m.Bodies[m.Cursor]

	var b strings.Builder
	b.WriteString("  " + StyleHighlight.Render(body.ID))
	if body.Label != "" && body.Label != body.ID {
		b.WriteString("  " + listDimStyle.Render(body.Label))
	}
	b.WriteString("\n")

	if links := m.Links[body.ID]; len(links) > 0 {
		b.WriteString("  " + listDimStyle.Render("links:   ") + listNormalStyle.Render(strings.Join(links, ", ")) + "\n")
	}
	if len(body.Members) > 0 {
		b.WriteString("  " + listDimStyle.Render("members: ") + listNormalStyle.Render(strings.Join(body.Members, ", ")) + "\n")
	}

	return b.String()
}
