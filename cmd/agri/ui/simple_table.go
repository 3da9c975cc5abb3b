package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static tabular data, optionally with one row
// highlighted. Used by both the TUI list pages and the plain CLI
// commands.
type SimpleTable struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Selected int // highlighted row index, -1 for none
}

// NewSimpleTable creates a table with no selection.
func NewSimpleTable(title string, headers ...string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers, Selected: -1}
}

// AddRow appends one row.
func (t *SimpleTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(aucune donnée)"))
		return sb.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	pad := func(s string, w int) string {
		gap := w - lipgloss.Width(s)
		if gap < 0 {
			gap = 0
		}
		return s + strings.Repeat(" ", gap)
	}

	headerCells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headerCells[i] = pad(h, widths[i])
	}
	sb.WriteString(styles.Bold.Render(strings.Join(headerCells, "  ")))
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for r, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i < len(widths) {
				cells = append(cells, pad(cell, widths[i]))
			}
		}
		line := strings.Join(cells, "  ")
		if r == t.Selected {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Body.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
