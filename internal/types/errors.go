//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidInputError is returned when a SiteInput fails boundary validation.
type InvalidInputError struct {
	Fields []FieldError `json:"fields"`
}

func (e *InvalidInputError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// HasField reports whether the given field was rejected.
func (e *InvalidInputError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
