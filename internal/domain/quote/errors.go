package quote

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks bad user input. Nothing has been stored.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a hosted store failure other than a uniqueness violation.
	ErrStorage = errors.New("storage failure")
	// ErrDuplicateKey marks a policy number or quote link that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	// ErrInvalidTransition marks a status change other than Generated -> Contracted.
	ErrInvalidTransition = errors.New("invalid status transition")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
