package schema

import (
	"sort"
	"strings"
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationErrors collects every problem found in one payload.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the errors keyed by field name.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

func (v ValidationErrors) sorted() ValidationErrors {
	sort.SliceStable(v, func(i, j int) bool { return v[i].Field < v[j].Field })
	return v
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
