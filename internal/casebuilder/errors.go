package casebuilder

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidationError is returned by Build in strict mode when a case cannot be
// evaluated. It never aborts a batch; the caller writes the error marker for
// the row and continues.
type ValidationError struct {
	CaseID string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	id := e.CaseID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("case %s invalid: %s", id, strings.Join(parts, "; "))
}

// Has reports whether field is among the failed fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
