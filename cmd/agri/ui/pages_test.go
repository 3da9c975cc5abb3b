package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"agrigest/internal/api"
	"agrigest/internal/controller"
	"agrigest/internal/forms"
)

type rowItem struct {
	ID  int
	Nom string
}

func newRowList(fetch func(context.Context, api.Filters) ([]rowItem, error), remove func(context.Context, int) error) *controller.List[rowItem] {
	return controller.NewList(fetch, remove,
		func(i rowItem) int { return i.ID },
		func(i rowItem) []string { return []string{i.Nom} },
		nil, nil,
	)
}

func newRowPage(list *controller.List[rowItem]) *ListPage[rowItem] {
	return NewListPage("Cultures", list,
		[]string{"ID", "Nom"},
		func(i rowItem) []string { return []string{"", i.Nom} },
		func(i rowItem) string { return i.Nom },
		testStyles(),
	)
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// The reload command must only perform the fetch; the collection is
// touched from Update, on the event loop.
func TestListPageAppliesLoadInUpdate(t *testing.T) {
	list := newRowList(func(context.Context, api.Filters) ([]rowItem, error) {
		return []rowItem{{1, "Maïs"}, {2, "Riz"}}, nil
	}, nil)
	page := newRowPage(list)

	msg := page.Reload()()
	if list.Len() != 0 {
		t.Fatalf("command mutated the collection off the loop: %d items", list.Len())
	}

	if _, handled := page.Update(msg); !handled {
		t.Fatal("page ignored its own load message")
	}
	if list.Len() != 2 {
		t.Fatalf("Update did not apply the fetched items: got %d", list.Len())
	}
}

// The delete command calls the server only; the removal lands in
// Update once the call reports success.
func TestListPageAppliesDeleteInUpdate(t *testing.T) {
	list := newRowList(func(context.Context, api.Filters) ([]rowItem, error) {
		return []rowItem{{1, "Maïs"}, {2, "Riz"}}, nil
	}, func(context.Context, int) error { return nil })
	page := newRowPage(list)
	page.Update(page.Reload()())

	page.Update(keyRunes('d'))
	cmd, _ := page.Update(keyRunes('o'))
	if cmd == nil {
		t.Fatal("confirming a delete must dispatch the facade call")
	}

	msg := cmd()
	if list.Len() != 2 {
		t.Fatalf("command mutated the collection off the loop: %d items", list.Len())
	}

	page.Update(msg)
	if list.Len() != 1 {
		t.Fatalf("Update did not reconcile the deletion: got %d items", list.Len())
	}
	if got := list.Items()[0].ID; got != 2 {
		t.Fatalf("selected item 1 must be removed: kept id %d", got)
	}
}

func TestListPageIgnoresKeysWhileLoading(t *testing.T) {
	list := newRowList(func(context.Context, api.Filters) ([]rowItem, error) {
		return nil, nil
	}, nil)
	page := newRowPage(list)

	_ = page.Reload() // loading until the message comes back
	if cmd, handled := page.Update(keyRunes('r')); cmd != nil || !handled {
		t.Fatal("keys during an in-flight load must be swallowed")
	}
}

func formTestFields() []forms.Field {
	return []forms.Field{
		{Name: "nom", Label: "Nom", Kind: forms.Text},
	}
}

var formTestRules = controller.RuleSet{
	{Field: "nom", Kind: controller.Required, Message: "Le nom est requis"},
}

// Validation runs on the loop: an invalid draft yields no command and
// the messages are already visible.
func TestFormPageSubmitKeepsValidationLocal(t *testing.T) {
	calls := 0
	form := controller.NewForm(formTestRules, controller.Values{}, nil,
		func(context.Context, controller.Values) error { calls++; return nil })
	page := NewFormPage("Nouvelle culture", "Cultures", form, formTestFields(), nil, testStyles())

	cmd, _ := page.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("invalid draft must not dispatch a network call")
	}
	if calls != 0 {
		t.Fatalf("facade called %d times on an invalid draft", calls)
	}
	if form.Error("nom") == "" {
		t.Fatal("validation message missing after the refused submit")
	}
}

// The submit command carries the outcome back as a message; form state
// and errors only change in Update.
func TestFormPageAppliesSubmitOutcomeInUpdate(t *testing.T) {
	form := controller.NewForm(formTestRules, controller.Values{"nom": "Maïs"}, nil,
		func(context.Context, controller.Values) error {
			return api.FieldErrors{"nom": "Ce nom existe déjà"}
		})
	page := NewFormPage("Nouvelle culture", "Cultures", form, formTestFields(), nil, testStyles())

	cmd, _ := page.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("valid draft must dispatch the facade call")
	}

	msg := cmd()
	if len(form.Errors()) != 0 {
		t.Fatalf("command mutated the error map off the loop: %v", form.Errors())
	}
	if form.State() != controller.FormSubmitting {
		t.Fatal("form must stay submitting until Update applies the outcome")
	}

	page.Update(msg)
	if got := form.Error("nom"); got != "Ce nom existe déjà" {
		t.Fatalf("Update did not apply the rejection: %q", got)
	}
	if form.State() != controller.FormEditing {
		t.Fatal("form must return to editing after the outcome lands")
	}
}

// Edit-mode initial values travel in the message and populate the
// draft from Update.
func TestFormPageAppliesInitialValuesInUpdate(t *testing.T) {
	form := controller.NewForm(formTestRules, controller.Values{}, func(context.Context) (controller.Values, error) {
		return controller.Values{"nom": "Riz"}, nil
	}, func(context.Context, controller.Values) error { return nil })
	page := NewFormPage("Modifier la culture", "Cultures", form, formTestFields(), nil, testStyles())

	msg := page.LoadInitial()()
	if form.State() != controller.FormLoading || form.Value("nom") != "" {
		t.Fatal("command mutated the draft off the loop")
	}

	page.Update(msg)
	if form.Value("nom") != "Riz" {
		t.Fatalf("Update did not apply the fetched record: %q", form.Value("nom"))
	}
	if got := page.inputs["nom"].Value(); got != "Riz" {
		t.Fatalf("input not synced from the applied draft: %q", got)
	}
}
