package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"agrigest/internal/api"
	"agrigest/internal/app"
	"agrigest/internal/types"
)

// conseilsLoadedMsg reports a finished advice load.
type conseilsLoadedMsg struct {
	items []types.Conseil
	err   error
}

// conseilReadMsg reports a finished mark-read call.
type conseilReadMsg struct {
	id  int
	err error
}

// ConseilsPage lists advice and renders the selected entry's content
// through glamour. Opening an unread entry marks it read.
type ConseilsPage struct {
	app    *app.App
	styles Styles

	items    []types.Conseil
	cursor   int
	reading  bool
	rendered string
	loadErr  error
	loading  bool
}

// NewConseilsPage builds the advice page.
func NewConseilsPage(a *app.App, styles Styles) *ConseilsPage {
	return &ConseilsPage{app: a, styles: styles}
}

// Reload returns the command loading the advice feed.
func (p *ConseilsPage) Reload() tea.Cmd {
	p.loading = true
	a := p.app
	return func() tea.Msg {
		items, err := a.API.Conseils().GetAll(context.Background(), api.Filters{})
		return conseilsLoadedMsg{items: items, err: err}
	}
}

// Update handles messages for this page.
func (p *ConseilsPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case conseilsLoadedMsg:
		p.loading = false
		p.items, p.loadErr = msg.items, msg.err
		if p.cursor >= len(p.items) {
			p.cursor = 0
		}
		return nil, true

	case conseilReadMsg:
		if msg.err == nil {
			for i := range p.items {
				if p.items[i].ID == msg.id {
					p.items[i].Lu = true
				}
			}
		}
		return nil, true

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, false
}

func (p *ConseilsPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.reading {
		switch msg.String() {
		case "esc", "q", "enter":
			p.reading = false
			return nil, true
		}
		return nil, true
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "r":
		return p.Reload(), true
	case "enter":
		if p.cursor >= len(p.items) {
			return nil, true
		}
		conseil := p.items[p.cursor]
		p.rendered = renderMarkdown(conseil.Contenu)
		p.reading = true
		if !conseil.Lu {
			a, id := p.app, conseil.ID
			return func() tea.Msg {
				_, err := a.API.Conseils().MarkRead(context.Background(), id)
				return conseilReadMsg{id: id, err: err}
			}, true
		}
	default:
		return nil, false
	}
	return nil, true
}

func renderMarkdown(content string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76))
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// View renders the page.
func (p *ConseilsPage) View() string {
	s := p.styles
	var sb strings.Builder
	sb.WriteString(s.Header.Render("Conseils agricoles") + "\n")

	if p.loading {
		sb.WriteString(s.Muted.Render("Chargement..."))
		return sb.String()
	}
	if p.loadErr != nil {
		sb.WriteString(s.Error.Render("Erreur lors du chargement des conseils") + "\n")
		sb.WriteString(s.Help.Render("r: réessayer"))
		return sb.String()
	}

	if p.reading && p.cursor < len(p.items) {
		conseil := p.items[p.cursor]
		sb.WriteString(s.Title.Render(conseil.Titre) + "\n")
		sb.WriteString(s.Muted.Render(fmt.Sprintf("priorité: %s", conseil.Priorite)) + "\n\n")
		sb.WriteString(p.rendered)
		sb.WriteString(s.Help.Render("esc: retour à la liste"))
		return sb.String()
	}

	table := NewSimpleTable("", "", "Titre", "Priorité", "Date")
	for _, c := range p.items {
		flag := "●"
		if c.Lu {
			flag = " "
		}
		table.AddRow(flag, c.Titre, c.Priorite, c.DateCreation)
	}
	table.Selected = p.cursor
	sb.WriteString(table.View(s))

	sb.WriteString("\n" + s.Help.Render("↑/↓: naviguer  entrée: lire  r: actualiser  esc: retour"))
	return sb.String()
}
