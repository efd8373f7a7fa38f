package usecase

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidInputError carries a user-displayable reason. Handlers surface it
// verbatim as a 400.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func invalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
