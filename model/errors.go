package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName      = errors.New("form name must not be empty")
	ErrEmptyLabel     = errors.New("field label must not be empty")
	ErrDuplicateLabel = errors.New("a field with this label already exists")
	ErrEmptyOption    = errors.New("option text must not be empty")
	ErrPendingField   = errors.New("typed field label has not been added")
	ErrPendingOption  = errors.New("typed option has not been added")
	ErrUnknownType    = errors.New("unknown field type")
)

// MissingRequiredError reports every required field left empty in a
// submission, not just the first one found.
type MissingRequiredError struct {
	Labels []string
}

func (e *MissingRequiredError) Error() string {
	return "required fields: " + strings.Join(e.Labels, ", ")
}
