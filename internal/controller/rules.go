// Package controller provides the two controller shapes every resource
// page is built from: a list controller (load, filter, search, delete,
// reconcile) and a form controller (draft, validate, submit). Both are
// parametric so the per-resource pages stay thin.
package controller

import (
	"strconv"
	"strings"
)

// Values is a draft: the locally-held, not-yet-submitted field set of a
// form. All values are strings as typed; numeric coercion happens at
// submit time.
type Values map[string]string

// Clone returns an independent copy of the draft.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Number parses a field as float64, returning 0 for blank or malformed
// input. Mirrors the permissive coercion the forms rely on for the
// live harvest preview.
func (v Values) Number(field string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v[field]), 64)
	if err != nil {
		return 0
	}
	return f
}

// RuleKind selects the validation predicate for a field.
type RuleKind int

const (
	// Required fails on a blank value after trimming.
	Required RuleKind = iota
	// RequiredDate fails only when the date is absent.
	RequiredDate
	// Positive fails when the value is blank, malformed, or <= 0.
	Positive
	// NonNegative fails when the value is blank, malformed, or < 0.
	NonNegative
	// OptionalNonNegative fails only when a value is present and
	// malformed or < 0. Blank passes.
	OptionalNonNegative
)

// Rule validates a single field.
type Rule struct {
	Field   string
	Kind    RuleKind
	Message string
}

// RuleSet is the validation pass run before any create/update call.
type RuleSet []Rule

// Validate returns a field → message map; an empty map means the draft
// may be submitted.
func (rs RuleSet) Validate(draft Values) map[string]string {
	errs := make(map[string]string)
	for _, r := range rs {
		raw := strings.TrimSpace(draft[r.Field])
		switch r.Kind {
		case Required, RequiredDate:
			if raw == "" {
				errs[r.Field] = r.Message
			}
		case Positive:
			if n, err := strconv.ParseFloat(raw, 64); raw == "" || err != nil || n <= 0 {
				errs[r.Field] = r.Message
			}
		case NonNegative:
			if n, err := strconv.ParseFloat(raw, 64); raw == "" || err != nil || n < 0 {
				errs[r.Field] = r.Message
			}
		case OptionalNonNegative:
			if raw == "" {
				continue
			}
			if n, err := strconv.ParseFloat(raw, 64); err != nil || n < 0 {
				errs[r.Field] = r.Message
			}
		}
	}
	return errs
}
