package controller

import (
	"context"
	"fmt"

	"agrigest/internal/api"
)

// FormState tracks where a form is in its lifecycle.
type FormState int

const (
	FormLoading FormState = iota
	FormEditing
	FormSubmitting
)

// GeneralError is the error-map key for failures with no field to
// attach to.
const GeneralError = "general"

// Form drives one resource form: it owns the draft, the validation
// pass, and the create-or-update submission. The caller supplies three
// functions binding it to a resource facade; edit mode is selected by
// a non-nil load.
type Form struct {
	rules    RuleSet
	defaults Values

	// load fetches the record being edited, as draft values. Nil for
	// create mode.
	load func(context.Context) (Values, error)
	// submit coerces and sends the draft. The caller binds it to
	// create or update depending on mode.
	submit func(context.Context, Values) error

	state  FormState
	draft  Values
	errors map[string]string
}

// NewForm creates a form controller. With a nil load it starts in
// editing state on the defaults; otherwise it starts loading and the
// caller must run LoadInitial before editing.
func NewForm(rules RuleSet, defaults Values, load func(context.Context) (Values, error), submit func(context.Context, Values) error) *Form {
	f := &Form{
		rules:    rules,
		defaults: defaults,
		load:     load,
		submit:   submit,
		draft:    defaults.Clone(),
		errors:   make(map[string]string),
		state:    FormEditing,
	}
	if load != nil {
		f.state = FormLoading
	}
	return f
}

// EditMode reports whether the form edits an existing record.
func (f *Form) EditMode() bool { return f.load != nil }

// State returns the current lifecycle state.
func (f *Form) State() FormState { return f.state }

// FetchInitial fetches the record being edited without touching the
// draft. Callers on an event loop run it off-loop and apply the result
// with ApplyInitial. Nil values in create mode.
func (f *Form) FetchInitial(ctx context.Context) (Values, error) {
	if f.load == nil {
		return nil, nil
	}
	loaded, err := f.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return loaded, nil
}

// ApplyInitial populates the draft from fetched record values. Absent
// fields keep their defaults.
func (f *Form) ApplyInitial(loaded Values) {
	draft := f.defaults.Clone()
	for field, value := range loaded {
		if value != "" {
			draft[field] = value
		}
	}
	f.draft = draft
	f.state = FormEditing
}

// LoadInitial fetches and applies in one step, for callers not running
// an event loop.
func (f *Form) LoadInitial(ctx context.Context) error {
	loaded, err := f.FetchInitial(ctx)
	if err != nil {
		return err
	}
	if f.load != nil {
		f.ApplyInitial(loaded)
	}
	return nil
}

// Set records a field edit and clears that field's validation error.
func (f *Form) Set(field, value string) {
	f.draft[field] = value
	delete(f.errors, field)
	delete(f.errors, GeneralError)
}

// Value returns the draft value of a field.
func (f *Form) Value(field string) string { return f.draft[field] }

// Draft returns the live draft values.
func (f *Form) Draft() Values { return f.draft }

// Errors returns the current field → message map.
func (f *Form) Errors() map[string]string { return f.errors }

// Error returns the message for one field, or "".
func (f *Form) Error(field string) string { return f.errors[field] }

// Begin validates the draft and opens a submission. A validation
// failure leaves messages in Errors and returns false; no network call
// should follow. On success the form enters FormSubmitting and the
// returned snapshot is what Send must carry, immune to edits made
// while the call is in flight. Re-entrant calls while submitting are
// refused.
func (f *Form) Begin() (Values, bool) {
	if f.state != FormEditing {
		return nil, false
	}
	if errs := f.rules.Validate(f.draft); len(errs) > 0 {
		f.errors = errs
		return nil, false
	}
	f.errors = make(map[string]string)
	f.state = FormSubmitting
	return f.draft.Clone(), true
}

// Send runs the submission call without touching form state. Callers
// on an event loop run it off-loop and apply the outcome with Finish.
func (f *Form) Send(ctx context.Context, draft Values) error {
	return f.submit(ctx, draft)
}

// Finish closes the submission opened by Begin. A rejection leaves
// messages in Errors and returns false.
func (f *Form) Finish(err error) bool {
	f.state = FormEditing
	if err == nil {
		return true
	}
	if fieldErrs, ok := api.AsFieldErrors(err); ok {
		for field, msg := range fieldErrs {
			f.errors[field] = msg
		}
	} else {
		f.errors[GeneralError] = "Erreur lors de la sauvegarde"
	}
	return false
}

// Submit validates, sends, and records the outcome in one step, for
// callers not running an event loop.
func (f *Form) Submit(ctx context.Context) bool {
	draft, ok := f.Begin()
	if !ok {
		return false
	}
	return f.Finish(f.submit(ctx, draft))
}
