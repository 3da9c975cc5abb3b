package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is a non-validation failure from the backend: a status code
// plus whatever detail message the server attached.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// FieldErrors is a field-keyed rejection payload from a failed create
// or update, in the backend's {"field": ["message", ...]} shape. Only
// the first message per field is kept.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "api: invalid input"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "api: invalid input: " + strings.Join(parts, "; ")
}

// AsFieldErrors extracts a FieldErrors from err if the failure carried
// a field-keyed payload.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// parseErrorBody turns a non-2xx response body into either FieldErrors
// (object with field keys) or an *Error with the detail string. Bodies
// that are not JSON objects collapse to the generic case.
func parseErrorBody(status int, body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return &Error{StatusCode: status}
	}

	if detail, ok := raw["detail"]; ok {
		var msg string
		if json.Unmarshal(detail, &msg) == nil {
			return &Error{StatusCode: status, Detail: msg}
		}
	}
	if msg, ok := raw["error"]; ok {
		var s string
		if json.Unmarshal(msg, &s) == nil {
			return &Error{StatusCode: status, Detail: s}
		}
	}

	// Field-keyed shape is only meaningful for validation rejections.
	if status != http.StatusBadRequest {
		return &Error{StatusCode: status}
	}

	fe := make(FieldErrors, len(raw))
	for field, val := range raw {
		var msgs []string
		if json.Unmarshal(val, &msgs) == nil && len(msgs) > 0 {
			fe[field] = msgs[0]
			continue
		}
		var msg string
		if json.Unmarshal(val, &msg) == nil {
			fe[field] = msg
		}
	}
	if len(fe) == 0 {
		return &Error{StatusCode: status}
	}
	return fe
}
