package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarChart renders a horizontal bar chart of labeled values.
type BarChart struct {
	Title string
	Width int // bar area width in cells
	Color lipgloss.Color

	labels []string
	values []float64
}

// NewBarChart creates a chart with the given bar width.
func NewBarChart(title string, width int, color lipgloss.Color) *BarChart {
	if width <= 0 {
		width = 30
	}
	return &BarChart{Title: title, Width: width, Color: color}
}

// Add appends one labeled value.
func (b *BarChart) Add(label string, value float64) {
	b.labels = append(b.labels, label)
	b.values = append(b.values, value)
}

// View renders the chart. Bars scale to the largest absolute value.
func (b *BarChart) View(styles Styles) string {
	var sb strings.Builder
	if b.Title != "" {
		sb.WriteString(styles.Title.Render(b.Title))
		sb.WriteString("\n")
	}
	if len(b.values) == 0 {
		sb.WriteString(styles.Muted.Render("(aucune donnée)"))
		sb.WriteString("\n")
		return sb.String()
	}

	max := 0.0
	labelWidth := 0
	for i, v := range b.values {
		if av := abs(v); av > max {
			max = av
		}
		if w := lipgloss.Width(b.labels[i]); w > labelWidth {
			labelWidth = w
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(b.Color)
	for i, v := range b.values {
		cells := 0
		if max > 0 {
			cells = int(abs(v) / max * float64(b.Width))
		}
		if cells == 0 && v != 0 {
			cells = 1
		}
		label := b.labels[i] + strings.Repeat(" ", labelWidth-lipgloss.Width(b.labels[i]))
		sb.WriteString(styles.Muted.Render(label))
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", cells)))
		sb.WriteString(styles.Body.Render(fmt.Sprintf(" %.0f", v)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
