package app

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a save is blocked by a presence check.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation on a stale or missing node id. Callers
	// treat it as a silent no-op.
	ErrNotFound = errors.New("node not found")
	// ErrConfirmationDeclined is returned when the user cancels a
	// destructive action.
	ErrConfirmationDeclined = errors.New("confirmation declined")
)

// ValidationError describes a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsSilent reports whether err should be swallowed without telling the user.
func IsSilent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConfirmationDeclined)
}
