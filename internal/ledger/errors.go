package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrEmptyUndo       = errors.New("nothing to undo")
	ErrNothingSelected = errors.New("no transactions selected")
)

// ValidationError reports a missing or malformed field. The ledger is left
// unchanged whenever one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
