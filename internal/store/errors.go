package store

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("document not found")

// NotFoundError reports a required document that is missing or unparsable.
type NotFoundError struct {
	Kind Kind
	ID   string
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	what := kindNoun(e.Kind)
	if errors.Is(e.Err, os.ErrNotExist) {
		return fmt.Sprintf("%s %q not found (%s)", what, e.ID, e.Path)
	}
	return fmt.Sprintf("%s %q could not be read: %v", what, e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func kindNoun(kind Kind) string {
	switch kind {
	case KindGlobal:
		return "global config"
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindPlan:
		return "plan"
	default:
		return string(kind)
	}
}
