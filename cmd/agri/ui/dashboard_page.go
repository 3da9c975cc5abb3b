package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/api"
	"agrigest/internal/app"
	"agrigest/internal/forms"
)

// dashboardLoadedMsg carries the whole dashboard view or its failure.
type dashboardLoadedMsg struct {
	view *app.DashboardView
	err  error
}

// DashboardPage shows the aggregate statistics, unread advice, and the
// chart series. All three reads happen concurrently; any failure fails
// the page, with r to retry.
type DashboardPage struct {
	app    *app.App
	styles Styles

	view    *app.DashboardView
	loadErr error
	loading bool
	period  string
}

// NewDashboardPage builds the dashboard.
func NewDashboardPage(a *app.App, styles Styles) *DashboardPage {
	return &DashboardPage{app: a, styles: styles, period: api.Period12Months}
}

// Reload returns the command loading stats, charts and advice.
func (p *DashboardPage) Reload() tea.Cmd {
	p.loading = true
	a, period := p.app, p.period
	return func() tea.Msg {
		view, err := a.LoadDashboard(context.Background(), period)
		return dashboardLoadedMsg{view: view, err: err}
	}
}

// Update handles messages for this page.
func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		p.loading = false
		p.view, p.loadErr = msg.view, msg.err
		return nil, true

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return p.Reload(), true
		case "p":
			p.period = nextPeriod(p.period)
			return p.Reload(), true
		}
	}
	return nil, false
}

func nextPeriod(current string) string {
	for i, period := range api.ChartPeriods {
		if period == current {
			return api.ChartPeriods[(i+1)%len(api.ChartPeriods)]
		}
	}
	return api.Period12Months
}

// View renders the page.
func (p *DashboardPage) View() string {
	s := p.styles
	var sb strings.Builder
	sb.WriteString(s.Header.Render("Tableau de bord") + "\n")

	if p.loading {
		sb.WriteString(s.Muted.Render("Chargement..."))
		return sb.String()
	}
	if p.loadErr != nil {
		sb.WriteString(s.Error.Render("Erreur lors du chargement du tableau de bord") + "\n")
		sb.WriteString(s.Help.Render("r: réessayer"))
		return sb.String()
	}
	if p.view == nil {
		return sb.String()
	}

	stats := p.view.Stats
	table := NewSimpleTable("", "Indicateur", "Valeur")
	table.AddRow("Cultures", fmt.Sprintf("%d", stats.TotalCultures))
	table.AddRow("Récoltes", fmt.Sprintf("%d", stats.TotalRecoltes))
	table.AddRow("Revenus totaux", forms.FormatMontant(stats.RevenusTotaux))
	table.AddRow("Dépenses totales", forms.FormatMontant(stats.DepensesTotales))
	table.AddRow("Bénéfice net", forms.FormatMontant(stats.BeneficeNet))
	table.AddRow("Culture la plus rentable", stats.CulturePlusRentable)
	table.AddRow("Rendement moyen", fmt.Sprintf("%.2f /ha", stats.RendementMoyen))
	sb.WriteString(table.View(s) + "\n")

	if n := len(p.view.Conseils); n > 0 {
		sb.WriteString(s.Warning.Render(fmt.Sprintf("%d conseil(s) non lu(s)", n)) + "\n")
		for i, c := range p.view.Conseils {
			if i == 3 {
				break
			}
			sb.WriteString(s.Body.Render("  • "+c.Titre) + s.Muted.Render(" ["+c.Priorite+"]") + "\n")
		}
		sb.WriteString("\n")
	}

	charts := p.view.Charts
	revenus := NewBarChart("Revenus par mois ("+p.period+")", 28, ChartRevenus)
	for _, m := range charts.RevenusParMois {
		revenus.Add(m.Mois, m.Revenus)
	}
	depenses := NewBarChart("Dépenses par mois", 28, ChartDepenses)
	for _, m := range charts.DepensesParMois {
		depenses.Add(m.Mois, m.Depenses)
	}
	categories := NewBarChart("Dépenses par catégorie", 28, ChartNeutral)
	for _, c := range charts.DepensesParCategorie {
		categories.Add(c.Categorie, c.Total)
	}
	sb.WriteString(revenus.View(s) + "\n")
	sb.WriteString(depenses.View(s) + "\n")
	sb.WriteString(categories.View(s))

	sb.WriteString("\n" + s.Help.Render("p: période  r: actualiser  esc: retour"))
	return sb.String()
}
