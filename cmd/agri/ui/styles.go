// Package ui provides the interactive terminal interface for the agri
// client: login, resource lists and forms, the dashboard and charts.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Green-forward, matching the product identity.
var (
	ColorLeaf    = lipgloss.Color("#7CB342")
	ColorSoil    = lipgloss.Color("#5D4037")
	ColorSky     = lipgloss.Color("#42A5F5")
	ColorHarvest = lipgloss.Color("#FFB300")
	ColorError   = lipgloss.Color("#E53935")
	ColorMutedL  = lipgloss.Color("#9E9E9E")
	ColorInkL    = lipgloss.Color("#212121")
	ColorInkD    = lipgloss.Color("#F5F5F5")

	// Chart series colors.
	ChartRevenus  = ColorLeaf
	ChartDepenses = ColorError
	ChartNeutral  = ColorSky
)

// Theme selects foreground colors per terminal background.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// DarkTheme is the default.
func DarkTheme() Theme {
	return Theme{Foreground: ColorInkD, Muted: ColorMutedL, IsDark: true}
}

// LightTheme for light terminals.
func LightTheme() Theme {
	return Theme{Foreground: ColorInkL, Muted: ColorMutedL, IsDark: false}
}

// ThemeByName resolves "light"/"dark", defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles bundles the lipgloss styles every page shares.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ColorLeaf).MarginBottom(1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Body:     lipgloss.NewStyle().Foreground(t.Foreground),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Success:  lipgloss.NewStyle().Foreground(ColorLeaf),
		Warning:  lipgloss.NewStyle().Foreground(ColorHarvest),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorHarvest),
		Help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		Label:    lipgloss.NewStyle().Foreground(ColorSky),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
	}
}
