package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/controller"
	"agrigest/internal/forms"
)

// formLoadedMsg carries the edit-mode initial fetch back to the event
// loop; the controller is only touched from Update.
type formLoadedMsg struct {
	page   string
	values controller.Values
	err    error
}

// formSubmittedMsg carries a finished submission back to the event
// loop.
type formSubmittedMsg struct {
	page string
	err  error
}

// formDoneMsg asks the root model to navigate back to the list.
type formDoneMsg struct {
	resource string
}

// FormPage is the generic resource form: one input per field, inline
// validation messages, select cycling, and an optional live preview
// line (used by the harvest form).
type FormPage struct {
	name     string
	resource string
	form     *controller.Form
	fields   []forms.Field
	inputs   map[string]textinput.Model

	// preview renders an extra line under the fields from the current
	// draft, recomputed on every edit.
	preview func(controller.Values) string

	styles  Styles
	focus   int
	loading bool
}

// NewFormPage builds a form page. The controller carries mode (create
// vs edit) and the validation rule set.
func NewFormPage(name, resource string, form *controller.Form, fields []forms.Field, preview func(controller.Values) string, styles Styles) *FormPage {
	inputs := make(map[string]textinput.Model, len(fields))
	for _, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(form.Value(f.Name))
		inputs[f.Name] = in
	}

	p := &FormPage{
		name:     name,
		resource: resource,
		form:     form,
		fields:   fields,
		inputs:   inputs,
		preview:  preview,
		styles:   styles,
		loading:  form.State() == controller.FormLoading,
	}
	p.setFocus(0)
	return p
}

// LoadInitial returns the command fetching the record in edit mode,
// or nil in create mode. The command only performs the fetch; the
// values are applied in Update.
func (p *FormPage) LoadInitial() tea.Cmd {
	if !p.form.EditMode() {
		return nil
	}
	p.loading = true
	name, form := p.name, p.form
	return func() tea.Msg {
		values, err := form.FetchInitial(context.Background())
		return formLoadedMsg{page: name, values: values, err: err}
	}
}

func (p *FormPage) setFocus(i int) {
	p.focus = i
	for idx, f := range p.fields {
		in := p.inputs[f.Name]
		if idx == i && f.Kind != forms.Select {
			in.Focus()
		} else {
			in.Blur()
		}
		p.inputs[f.Name] = in
	}
}

// Update handles messages for this page.
func (p *FormPage) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		if msg.page != p.name {
			return nil, false
		}
		p.loading = false
		if msg.err == nil {
			p.form.ApplyInitial(msg.values)
			for name, in := range p.inputs {
				in.SetValue(p.form.Value(name))
				p.inputs[name] = in
			}
		}
		return nil, true

	case formSubmittedMsg:
		if msg.page != p.name {
			return nil, false
		}
		p.loading = false
		if p.form.Finish(msg.err) {
			resource := p.resource
			return func() tea.Msg { return formDoneMsg{resource: resource} }, true
		}
		return nil, true

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, false
}

func (p *FormPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.loading {
		return nil, true
	}
	field := p.fields[p.focus]

	switch msg.String() {
	case "tab", "down":
		p.setFocus((p.focus + 1) % len(p.fields))
		return nil, true
	case "shift+tab", "up":
		p.setFocus((p.focus - 1 + len(p.fields)) % len(p.fields))
		return nil, true
	case "ctrl+s":
		return p.submit(), true
	case "enter":
		if p.focus == len(p.fields)-1 {
			return p.submit(), true
		}
		p.setFocus(p.focus + 1)
		return nil, true
	case "left", "right":
		if field.Kind == forms.Select {
			p.cycleSelect(field, msg.String() == "right")
			return nil, true
		}
	}

	if field.Kind == forms.Select {
		return nil, true
	}
	in := p.inputs[field.Name]
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	p.inputs[field.Name] = in
	p.form.Set(field.Name, in.Value())
	return cmd, true
}

func (p *FormPage) cycleSelect(field forms.Field, forward bool) {
	if len(field.Options) == 0 {
		return
	}
	current := p.form.Value(field.Name)
	idx := 0
	for i, opt := range field.Options {
		if opt.Value == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(field.Options)
	} else {
		idx = (idx - 1 + len(field.Options)) % len(field.Options)
	}
	p.form.Set(field.Name, field.Options[idx].Value)
}

// submit validates on the loop and dispatches the network call. A
// validation failure returns nil with the messages already in the
// form; the command carries a snapshot, so edits made while it is in
// flight cannot reach the wire.
func (p *FormPage) submit() tea.Cmd {
	draft, ok := p.form.Begin()
	if !ok {
		return nil
	}
	p.loading = true
	name, form := p.name, p.form
	return func() tea.Msg {
		err := form.Send(context.Background(), draft)
		return formSubmittedMsg{page: name, err: err}
	}
}

// View renders the form.
func (p *FormPage) View() string {
	s := p.styles
	var sb strings.Builder

	sb.WriteString(s.Header.Render(p.name) + "\n")
	if p.loading && p.form.State() == controller.FormLoading {
		sb.WriteString(s.Muted.Render("Chargement..."))
		return sb.String()
	}

	for i, f := range p.fields {
		label := f.Label
		if i == p.focus {
			label = s.Selected.Render("> " + label)
		} else {
			label = s.Label.Render("  " + label)
		}
		sb.WriteString(label + "\n")

		if f.Kind == forms.Select {
			value := p.form.Value(f.Name)
			display := value
			for _, opt := range f.Options {
				if opt.Value == value {
					display = opt.Label
				}
			}
			if display == "" {
				display = "—"
			}
			sb.WriteString(s.Body.Render(fmt.Sprintf("    ◂ %s ▸", display)) + "\n")
		} else {
			sb.WriteString("    " + p.inputs[f.Name].View() + "\n")
		}

		if msg := p.form.Error(f.Name); msg != "" {
			sb.WriteString(s.Error.Render("    "+msg) + "\n")
		}
	}

	if p.preview != nil {
		sb.WriteString("\n" + s.Success.Render(p.preview(p.form.Draft())) + "\n")
	}
	if msg := p.form.Error(controller.GeneralError); msg != "" {
		sb.WriteString("\n" + s.Error.Render(msg) + "\n")
	}
	if p.loading {
		sb.WriteString("\n" + s.Muted.Render("Enregistrement..."))
	}

	sb.WriteString("\n" + s.Help.Render("tab: champ suivant  ←/→: choix  ctrl+s: enregistrer  esc: annuler"))
	return sb.String()
}
