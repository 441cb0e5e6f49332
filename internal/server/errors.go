// Package server provides the HTTP REST API for the rainwater advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/rainwater-advisor/internal/schemas"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAssessmentNotFound indicates no stored assessment has the ID
type ErrAssessmentNotFound struct {
	ID uuid.UUID
}

func (e *ErrAssessmentNotFound) Error() string {
	return fmt.Sprintf("assessment not found: %s", e.ID)
}

// fieldErrorBody is the JSON shape of one rejected field.
type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		invalid    *types.InvalidInputError
		schemaErr  *schemas.ValidationError
		notFound   *ErrAssessmentNotFound
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &invalid), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fieldErrors flattens validation errors into per-field entries. It returns
// nil for errors that carry no field detail.
func fieldErrors(err error) []fieldErrorBody {
	var (
		validation *ErrValidation
		invalid    *types.InvalidInputError
		schemaErr  *schemas.ValidationError
	)
	switch {
	case errors.As(err, &invalid):
		out := make([]fieldErrorBody, 0, len(invalid.Fields))
		for _, f := range invalid.Fields {
			out = append(out, fieldErrorBody{Field: f.Field, Message: f.Message})
		}
		return out
	case errors.As(err, &schemaErr):
		out := make([]fieldErrorBody, 0, len(schemaErr.Errors))
		for _, f := range schemaErr.Errors {
			out = append(out, fieldErrorBody{Field: f.Field, Message: f.Message})
		}
		return out
	case errors.As(err, &validation):
		return []fieldErrorBody{{Field: validation.Field, Message: validation.Message}}
	}
	return nil
}
