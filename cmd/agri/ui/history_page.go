package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/app"
	"agrigest/internal/export"
	"agrigest/internal/forms"
	"agrigest/internal/history"
)

// historyLoadedMsg carries the merged feed source data.
type historyLoadedMsg struct {
	data *app.HistoryData
	err  error
}

// historyExportedMsg reports a finished export.
type historyExportedMsg struct {
	path string
	err  error
}

var historyTypes = []string{"", history.TypeCulture, history.TypeRecolte, history.TypeDepense}

// HistoryPage shows the merged activity feed with search, a type
// filter, running totals, and CSV/XLSX export of the filtered view.
type HistoryPage struct {
	app    *app.App
	styles Styles

	data       *app.HistoryData
	filter     history.Filter
	search     textinput.Model
	searching  bool
	typeCursor int
	loadErr    error
	loading    bool
	notice     string
}

// NewHistoryPage builds the history page.
func NewHistoryPage(a *app.App, styles Styles) *HistoryPage {
	search := textinput.New()
	search.Placeholder = "Rechercher..."
	search.Prompt = "/ "
	return &HistoryPage{app: a, styles: styles, search: search}
}

// Reload returns the command fetching the three collections.
func (p *HistoryPage) Reload() tea.Cmd {
	p.loading = true
	a := p.app
	return func() tea.Msg {
		data, err := a.LoadHistory(context.Background())
		return historyLoadedMsg{data: data, err: err}
	}
}

func (p *HistoryPage) activities() []history.Activity {
	if p.data == nil {
		return nil
	}
	feed := history.Build(p.data.Cultures, p.data.Recoltes, p.data.Depenses, p.filter)
	return history.Search(feed, p.search.Value())
}

// Update handles messages for this page.
func (p *HistoryPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		p.loading = false
		p.data, p.loadErr = msg.data, msg.err
		return nil, true

	case historyExportedMsg:
		if msg.err != nil {
			p.notice = "Erreur lors de l'export"
		} else {
			p.notice = "Exporté: " + msg.path
		}
		return nil, true

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, false
}

func (p *HistoryPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.searching {
		switch msg.String() {
		case "enter", "esc":
			p.searching = false
			p.search.Blur()
		default:
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return cmd, true
		}
		return nil, true
	}

	switch msg.String() {
	case "/":
		p.searching = true
		p.search.Focus()
	case "t":
		p.typeCursor = (p.typeCursor + 1) % len(historyTypes)
		p.filter.Type = historyTypes[p.typeCursor]
	case "r":
		return p.Reload(), true
	case "c":
		return p.exportCmd("csv"), true
	case "x":
		return p.exportCmd("xlsx"), true
	default:
		return nil, false
	}
	return nil, true
}

func (p *HistoryPage) exportCmd(format string) tea.Cmd {
	activities := p.activities()
	return func() tea.Msg {
		path := export.DefaultFileName(format)
		f, err := os.Create(path)
		if err != nil {
			return historyExportedMsg{err: err}
		}
		defer f.Close()
		if format == "xlsx" {
			err = export.XLSX(f, activities)
		} else {
			err = export.CSV(f, activities)
		}
		return historyExportedMsg{path: path, err: err}
	}
}

// View renders the page.
func (p *HistoryPage) View() string {
	s := p.styles
	var sb strings.Builder
	sb.WriteString(s.Header.Render("Historique des activités") + "\n")

	if p.loading {
		sb.WriteString(s.Muted.Render("Chargement..."))
		return sb.String()
	}
	if p.loadErr != nil {
		sb.WriteString(s.Error.Render("Erreur lors du chargement de l'historique") + "\n")
		sb.WriteString(s.Help.Render("r: réessayer"))
		return sb.String()
	}

	if p.searching || p.search.Value() != "" {
		sb.WriteString(p.search.View() + "\n")
	}
	typeLabel := p.filter.Type
	if typeLabel == "" {
		typeLabel = "tous"
	}
	sb.WriteString(s.Muted.Render("Type: "+typeLabel) + "\n")

	activities := p.activities()
	table := NewSimpleTable("", "Date", "Type", "Titre", "Montant", "Zone")
	for _, a := range activities {
		table.AddRow(a.Date, a.Type, a.Title, forms.FormatMontant(a.Montant), a.Zone)
	}
	sb.WriteString(table.View(s) + "\n")

	totals := history.Sum(activities)
	sb.WriteString(s.Success.Render(fmt.Sprintf("Revenus: %s", forms.FormatMontant(totals.Revenus))))
	sb.WriteString(s.Error.Render(fmt.Sprintf("  Dépenses: %s", forms.FormatMontant(totals.Depenses))))
	solde := s.Success
	if totals.Solde < 0 {
		solde = s.Error
	}
	sb.WriteString(solde.Render(fmt.Sprintf("  Solde: %s", forms.FormatMontant(totals.Solde))) + "\n")

	if p.notice != "" {
		sb.WriteString(s.Warning.Render(p.notice) + "\n")
	}
	sb.WriteString(s.Help.Render("/: rechercher  t: type  c: export CSV  x: export XLSX  r: actualiser  esc: retour"))
	return sb.String()
}
