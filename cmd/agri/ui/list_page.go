package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/api"
	"agrigest/internal/controller"
)

// listLoadedMsg carries a finished (re)load back to the event loop;
// the controller is only touched from Update.
type listLoadedMsg[T any] struct {
	page    string
	filters api.Filters
	items   []T
	err     error
}

// itemDeletedMsg carries a finished delete attempt back to the event
// loop.
type itemDeletedMsg struct {
	page string
	id   int
	err  error
}

// openFormMsg asks the root model to open a resource form.
type openFormMsg struct {
	resource string
	id       int // 0 for create
}

// ListPage is the generic resource list: fetched collection, client
// search, keyboard selection, and a two-step delete.
type ListPage[T any] struct {
	name    string
	list    *controller.List[T]
	row     func(T) []string
	label   func(T) string
	headers []string
	filters api.Filters

	styles    Styles
	search    textinput.Model
	searching bool
	cursor    int
	confirmID int // pending delete, 0 when none
	loading   bool
	notice    string
	width     int
	height    int
}

// NewListPage builds a list page bound to a list controller.
func NewListPage[T any](name string, list *controller.List[T], headers []string, row func(T) []string, label func(T) string, styles Styles) *ListPage[T] {
	search := textinput.New()
	search.Placeholder = "Rechercher..."
	search.Prompt = "/ "
	search.CharLimit = 80

	return &ListPage[T]{
		name:    name,
		list:    list,
		row:     row,
		label:   label,
		headers: headers,
		styles:  styles,
		search:  search,
	}
}

// SetFilters replaces the server-side filter set used by loads.
func (p *ListPage[T]) SetFilters(f api.Filters) { p.filters = f }

// SetSize stores the window size.
func (p *ListPage[T]) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Reload returns the command that fetches the collection. The command
// only performs the network call; the result is applied in Update.
func (p *ListPage[T]) Reload() tea.Cmd {
	p.loading = true
	name, filters := p.name, p.filters
	list := p.list
	return func() tea.Msg {
		items, err := list.Fetch(context.Background(), filters)
		return listLoadedMsg[T]{page: name, filters: filters, items: items, err: err}
	}
}

func (p *ListPage[T]) visible() []T {
	return p.list.Search(p.search.Value())
}

func (p *ListPage[T]) clampCursor() {
	if n := len(p.visible()); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Update handles messages for this page.
func (p *ListPage[T]) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case listLoadedMsg[T]:
		if msg.page != p.name {
			return nil, false
		}
		p.loading = false
		p.list.Resolve(msg.filters, msg.items, msg.err)
		p.clampCursor()
		return nil, true

	case itemDeletedMsg:
		if msg.page != p.name {
			return nil, false
		}
		p.loading = false
		if msg.err != nil {
			p.notice = "Erreur lors de la suppression"
		} else {
			p.list.Reconcile(msg.id)
			p.notice = ""
		}
		p.clampCursor()
		return nil, true

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, false
}

func (p *ListPage[T]) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.loading {
		return nil, true
	}
	if p.searching {
		switch msg.String() {
		case "enter", "esc":
			p.searching = false
			p.search.Blur()
		default:
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			p.clampCursor()
			return cmd, true
		}
		return nil, true
	}

	// Pending delete confirmation.
	if p.confirmID != 0 {
		switch msg.String() {
		case "y", "o": // oui
			id := p.confirmID
			p.confirmID = 0
			p.loading = true
			name, list := p.name, p.list
			return func() tea.Msg {
				err := list.Remove(context.Background(), id)
				return itemDeletedMsg{page: name, id: id, err: err}
			}, true
		default:
			p.confirmID = 0
			return nil, true
		}
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.visible())-1 {
			p.cursor++
		}
	case "/":
		p.searching = true
		p.search.Focus()
	case "r":
		return p.Reload(), true
	case "n":
		return func() tea.Msg { return openFormMsg{resource: p.name} }, true
	case "enter", "e":
		items := p.visible()
		if p.cursor < len(items) {
			id := p.idOf(items[p.cursor])
			return func() tea.Msg { return openFormMsg{resource: p.name, id: id} }, true
		}
	case "d", "delete":
		items := p.visible()
		if p.cursor < len(items) {
			p.confirmID = p.idOf(items[p.cursor])
		}
	default:
		return nil, false
	}
	return nil, true
}

func (p *ListPage[T]) idOf(item T) int {
	return p.list.IDOf(item)
}

// View renders the page.
func (p *ListPage[T]) View() string {
	s := p.styles
	var out string

	out += s.Header.Render(p.name) + "\n"

	if p.searching || p.search.Value() != "" {
		out += p.search.View() + "\n"
	}

	if p.loading {
		out += s.Muted.Render("Chargement...") + "\n"
		return out
	}

	if err := p.list.Err(); err != nil {
		out += s.Error.Render("Erreur lors du chargement") + "\n"
		out += s.Help.Render("r: réessayer") + "\n"
		return out
	}

	table := NewSimpleTable("", p.headers...)
	items := p.visible()
	for _, item := range items {
		table.AddRow(p.row(item)...)
	}
	table.Selected = p.cursor
	out += table.View(s)

	if p.confirmID != 0 {
		label := ""
		if p.cursor < len(items) {
			label = p.label(items[p.cursor])
		}
		out += "\n" + s.Warning.Render(fmt.Sprintf("Supprimer %q ? (o/n)", label))
	}
	if p.notice != "" {
		out += "\n" + s.Error.Render(p.notice)
	}

	out += "\n" + s.Help.Render("↑/↓: naviguer  /: rechercher  n: nouveau  entrée: modifier  d: supprimer  r: actualiser  esc: retour")
	return out
}
