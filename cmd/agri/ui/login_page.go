package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/app"
)

// loginResultMsg reports a finished login attempt.
type loginResultMsg struct {
	err error
}

// loggedInMsg tells the root model to enter the authenticated area.
type loggedInMsg struct{}

// LoginPage collects credentials and opens the session.
type LoginPage struct {
	app      *app.App
	styles   Styles
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string
}

// NewLoginPage builds the login page.
func NewLoginPage(a *app.App, styles Styles) *LoginPage {
	username := textinput.New()
	username.Placeholder = "nom d'utilisateur"
	username.Focus()
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "mot de passe"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 32

	return &LoginPage{app: a, styles: styles, username: username, password: password}
}

// Update handles messages for this page.
func (p *LoginPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case loginResultMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = "Nom d'utilisateur ou mot de passe incorrect"
			return nil, true
		}
		return func() tea.Msg { return loggedInMsg{} }, true

	case tea.KeyMsg:
		if p.busy {
			return nil, true
		}
		switch msg.String() {
		case "tab", "down", "up", "shift+tab":
			p.focus = 1 - p.focus
			if p.focus == 0 {
				p.username.Focus()
				p.password.Blur()
			} else {
				p.username.Blur()
				p.password.Focus()
			}
			return nil, true
		case "enter":
			if p.focus == 0 {
				p.focus = 1
				p.username.Blur()
				p.password.Focus()
				return nil, true
			}
			return p.submit(), true
		}

		var cmd tea.Cmd
		if p.focus == 0 {
			p.username, cmd = p.username.Update(msg)
		} else {
			p.password, cmd = p.password.Update(msg)
		}
		p.errMsg = ""
		return cmd, true
	}
	return nil, false
}

func (p *LoginPage) submit() tea.Cmd {
	username := strings.TrimSpace(p.username.Value())
	password := p.password.Value()
	if username == "" || password == "" {
		p.errMsg = "Veuillez remplir tous les champs"
		return nil
	}
	p.busy = true
	a := p.app
	return func() tea.Msg {
		_, err := a.Login(context.Background(), username, password)
		return loginResultMsg{err: err}
	}
}

// View renders the page.
func (p *LoginPage) View() string {
	s := p.styles
	var sb strings.Builder
	sb.WriteString(s.Header.Render("AgriGest — Connexion") + "\n")
	sb.WriteString(s.Label.Render("Nom d'utilisateur") + "\n")
	sb.WriteString("  " + p.username.View() + "\n")
	sb.WriteString(s.Label.Render("Mot de passe") + "\n")
	sb.WriteString("  " + p.password.View() + "\n")
	if p.busy {
		sb.WriteString("\n" + s.Muted.Render("Connexion..."))
	}
	if p.errMsg != "" {
		sb.WriteString("\n" + s.Error.Render(p.errMsg))
	}
	sb.WriteString("\n" + s.Help.Render("entrée: se connecter  ctrl+c: quitter  (inscription: agri register)"))
	return sb.String()
}
