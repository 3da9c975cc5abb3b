package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/app"
	"agrigest/internal/controller"
	"agrigest/internal/forms"
	"agrigest/internal/types"
)

// Resource page names, also used as routing keys.
const (
	resourceCultures = "Cultures"
	resourceRecoltes = "Récoltes"
	resourceDepenses = "Dépenses"
)

type page int

const (
	pageLogin page = iota
	pageMenu
	pageDashboard
	pageCultures
	pageRecoltes
	pageDepenses
	pageConseils
	pageHistory
	pageForm
)

var menuEntries = []struct {
	label  string
	target page
}{
	{"Tableau de bord", pageDashboard},
	{"Cultures", pageCultures},
	{"Récoltes", pageRecoltes},
	{"Dépenses", pageDepenses},
	{"Conseils", pageConseils},
	{"Historique", pageHistory},
}

// sessionExpiredMsg is injected when any request got a 401.
type sessionExpiredMsg struct{}

// formReadyMsg carries a freshly built form page.
type formReadyMsg struct {
	page *FormPage
	err  error
}

// Model is the root TUI model: it owns the pages and routes messages
// to whichever is active.
type Model struct {
	app    *app.App
	styles Styles

	current    page
	menuCursor int

	login     *LoginPage
	dashboard *DashboardPage
	cultures  *ListPage[types.Culture]
	recoltes  *ListPage[types.Recolte]
	depenses  *ListPage[types.Depense]
	conseils  *ConseilsPage
	history   *HistoryPage
	form      *FormPage

	width  int
	height int
}

// NewModel builds the root model. The starting page depends on whether
// a session is already persisted.
func NewModel(a *app.App, styles Styles) *Model {
	m := &Model{app: a, styles: styles}
	m.login = NewLoginPage(a, styles)
	m.dashboard = NewDashboardPage(a, styles)
	m.conseils = NewConseilsPage(a, styles)
	m.history = NewHistoryPage(a, styles)

	m.cultures = NewListPage(resourceCultures,
		controller.NewList(
			a.API.Cultures().GetAll,
			a.API.Cultures().Delete,
			func(c types.Culture) int { return c.ID },
			func(c types.Culture) []string { return []string{c.Nom, c.ZoneGeographique} },
			nil, nil,
		),
		[]string{"Nom", "Date", "Zone", "Superficie", "Coût initial"},
		func(c types.Culture) []string {
			return []string{c.Nom, c.DateCulture, c.ZoneGeographique,
				fmt.Sprintf("%g ha", c.Superficie), forms.FormatMontant(c.CoutTotalInitial)}
		},
		func(c types.Culture) string { return c.Nom },
		styles,
	)

	m.recoltes = NewListPage(resourceRecoltes,
		controller.NewList(
			a.API.Recoltes().GetAll,
			a.API.Recoltes().Delete,
			func(r types.Recolte) int { return r.ID },
			func(r types.Recolte) []string { return []string{r.CultureNom} },
			nil, nil,
		),
		[]string{"Culture", "Date", "Quantité", "Revenus", "Qualité"},
		func(r types.Recolte) []string {
			return []string{r.CultureNom, r.DateRecolte,
				fmt.Sprintf("%g %s", r.QuantiteRecoltee, r.UniteRecolte),
				forms.FormatMontant(r.RevenusTotaux), r.QualiteRecolte}
		},
		func(r types.Recolte) string { return r.CultureNom + " " + r.DateRecolte },
		styles,
	)

	m.depenses = NewListPage(resourceDepenses,
		controller.NewList(
			a.API.Depenses().GetAll,
			a.API.Depenses().Delete,
			func(d types.Depense) int { return d.ID },
			func(d types.Depense) []string { return []string{d.Description, d.Categorie} },
			nil, nil,
		),
		[]string{"Description", "Catégorie", "Date", "Montant"},
		func(d types.Depense) []string {
			return []string{d.Description, d.Categorie, d.DateDepense, forms.FormatMontant(d.Montant)}
		},
		func(d types.Depense) string { return d.Description },
		styles,
	)

	if a.Session.Authenticated() {
		m.current = pageMenu
	} else {
		m.current = pageLogin
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cultures.SetSize(msg.Width, msg.Height)
		m.recoltes.SetSize(msg.Width, msg.Height)
		m.depenses.SetSize(msg.Width, msg.Height)
		return m, nil

	case sessionExpiredMsg:
		m.current = pageLogin
		m.login = NewLoginPage(m.app, m.styles)
		return m, nil

	case loggedInMsg:
		m.current = pageMenu
		return m, nil

	case formReadyMsg:
		if msg.err != nil {
			return m, nil
		}
		m.form = msg.page
		m.current = pageForm
		return m, m.form.LoadInitial()

	case openFormMsg:
		return m, m.buildForm(msg.resource, msg.id)

	case formDoneMsg:
		return m.closeForm(msg.resource)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "esc" && m.current != pageLogin {
			return m.handleEscape()
		}
	}

	return m, m.route(msg)
}

// route forwards a message to the active page.
func (m *Model) route(msg tea.Msg) tea.Cmd {
	switch m.current {
	case pageLogin:
		cmd, _ := m.login.Update(msg)
		return cmd
	case pageMenu:
		return m.updateMenu(msg)
	case pageDashboard:
		cmd, _ := m.dashboard.Update(msg)
		return cmd
	case pageCultures:
		cmd, _ := m.cultures.Update(msg)
		return cmd
	case pageRecoltes:
		cmd, _ := m.recoltes.Update(msg)
		return cmd
	case pageDepenses:
		cmd, _ := m.depenses.Update(msg)
		return cmd
	case pageConseils:
		cmd, _ := m.conseils.Update(msg)
		return cmd
	case pageHistory:
		cmd, _ := m.history.Update(msg)
		return cmd
	case pageForm:
		if m.form != nil {
			cmd, _ := m.form.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.current {
	case pageForm:
		if m.form != nil {
			return m.closeForm(m.form.resource)
		}
		m.current = pageMenu
	case pageMenu:
		return m, tea.Quit
	default:
		m.current = pageMenu
	}
	return m, nil
}

// closeForm returns to the owning list and reloads it.
func (m *Model) closeForm(resource string) (tea.Model, tea.Cmd) {
	m.form = nil
	switch resource {
	case resourceCultures:
		m.current = pageCultures
		return m, m.cultures.Reload()
	case resourceRecoltes:
		m.current = pageRecoltes
		return m, m.recoltes.Reload()
	case resourceDepenses:
		m.current = pageDepenses
		return m, m.depenses.Reload()
	}
	m.current = pageMenu
	return m, nil
}

func (m *Model) updateMenu(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(menuEntries)-1 {
			m.menuCursor++
		}
	case "enter":
		target := menuEntries[m.menuCursor].target
		m.current = target
		switch target {
		case pageDashboard:
			return m.dashboard.Reload()
		case pageCultures:
			return m.cultures.Reload()
		case pageRecoltes:
			return m.recoltes.Reload()
		case pageDepenses:
			return m.depenses.Reload()
		case pageConseils:
			return m.conseils.Reload()
		case pageHistory:
			return m.history.Reload()
		}
	}
	return nil
}

// buildForm assembles a form page, fetching select options when the
// resource needs them.
func (m *Model) buildForm(resource string, id int) tea.Cmd {
	a := m.app
	styles := m.styles
	return func() tea.Msg {
		switch resource {
		case resourceCultures:
			form := controller.NewForm(forms.CultureRules, forms.CultureDefaults(),
				cultureLoader(a, id), cultureSubmitter(a, id))
			return formReadyMsg{page: NewFormPage(formTitle("Culture", id), resource, form, forms.CultureFields, nil, styles)}

		case resourceRecoltes:
			options, err := a.API.Cultures().Options(context.Background())
			if err != nil {
				return formReadyMsg{err: err}
			}
			form := controller.NewForm(forms.RecolteRules, forms.RecolteDefaults(),
				recolteLoader(a, id), recolteSubmitter(a, id))
			preview := func(v controller.Values) string {
				p := forms.Preview(v)
				return fmt.Sprintf("Revenus estimés: %s   Bénéfice estimé: %s",
					forms.FormatMontant(p.Revenus), forms.FormatMontant(p.Benefice))
			}
			return formReadyMsg{page: NewFormPage(formTitle("Récolte", id), resource, form, forms.RecolteFields(options), preview, styles)}

		case resourceDepenses:
			options, err := a.API.Cultures().Options(context.Background())
			if err != nil {
				return formReadyMsg{err: err}
			}
			form := controller.NewForm(forms.DepenseRules, forms.DepenseDefaults(),
				depenseLoader(a, id), depenseSubmitter(a, id))
			return formReadyMsg{page: NewFormPage(formTitle("Dépense", id), resource, form, forms.DepenseFields(options), nil, styles)}
		}
		return formReadyMsg{err: fmt.Errorf("unknown resource %q", resource)}
	}
}

func formTitle(noun string, id int) string {
	if id > 0 {
		return "Modifier la " + strings.ToLower(noun) + " #" + strconv.Itoa(id)
	}
	return "Nouvelle " + strings.ToLower(noun)
}

func cultureLoader(a *app.App, id int) func(context.Context) (controller.Values, error) {
	if id == 0 {
		return nil
	}
	return func(ctx context.Context) (controller.Values, error) {
		culture, err := a.API.Cultures().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return forms.CultureValues(*culture), nil
	}
}

func cultureSubmitter(a *app.App, id int) func(context.Context, controller.Values) error {
	return func(ctx context.Context, v controller.Values) error {
		payload := forms.ToCulture(v)
		if id > 0 {
			_, err := a.API.Cultures().Update(ctx, id, payload)
			return err
		}
		_, err := a.API.Cultures().Create(ctx, payload)
		return err
	}
}

func recolteLoader(a *app.App, id int) func(context.Context) (controller.Values, error) {
	if id == 0 {
		return nil
	}
	return func(ctx context.Context) (controller.Values, error) {
		recolte, err := a.API.Recoltes().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return forms.RecolteValues(*recolte), nil
	}
}

func recolteSubmitter(a *app.App, id int) func(context.Context, controller.Values) error {
	return func(ctx context.Context, v controller.Values) error {
		payload := forms.ToRecolte(v)
		if id > 0 {
			_, err := a.API.Recoltes().Update(ctx, id, payload)
			return err
		}
		_, err := a.API.Recoltes().Create(ctx, payload)
		return err
	}
}

func depenseLoader(a *app.App, id int) func(context.Context) (controller.Values, error) {
	if id == 0 {
		return nil
	}
	return func(ctx context.Context) (controller.Values, error) {
		depense, err := a.API.Depenses().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return forms.DepenseValues(*depense), nil
	}
}

func depenseSubmitter(a *app.App, id int) func(context.Context, controller.Values) error {
	return func(ctx context.Context, v controller.Values) error {
		payload := forms.ToDepense(v)
		if id > 0 {
			_, err := a.API.Depenses().Update(ctx, id, payload)
			return err
		}
		_, err := a.API.Depenses().Create(ctx, payload)
		return err
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.current {
	case pageLogin:
		return m.login.View()
	case pageMenu:
		return m.menuView()
	case pageDashboard:
		return m.dashboard.View()
	case pageCultures:
		return m.cultures.View()
	case pageRecoltes:
		return m.recoltes.View()
	case pageDepenses:
		return m.depenses.View()
	case pageConseils:
		return m.conseils.View()
	case pageHistory:
		return m.history.View()
	case pageForm:
		if m.form != nil {
			return m.form.View()
		}
	}
	return ""
}

func (m *Model) menuView() string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.Header.Render("AgriGest") + "\n")
	if user, ok := m.app.Session.User(); ok {
		sb.WriteString(s.Muted.Render("Connecté: "+user.FullName()) + "\n\n")
	}
	for i, entry := range menuEntries {
		if i == m.menuCursor {
			sb.WriteString(s.Selected.Render("> "+entry.label) + "\n")
		} else {
			sb.WriteString(s.Body.Render("  "+entry.label) + "\n")
		}
	}
	sb.WriteString(s.Help.Render("↑/↓: naviguer  entrée: ouvrir  esc: quitter"))
	return sb.String()
}

// Run starts the interactive interface and blocks until exit.
func Run(a *app.App, themeName string) error {
	styles := NewStyles(ThemeByName(themeName))
	model := NewModel(a, styles)

	program := tea.NewProgram(model, tea.WithAltScreen())
	a.SetSessionExpiredHook(func() {
		program.Send(sessionExpiredMsg{})
	})

	_, err := program.Run()
	return err
}
