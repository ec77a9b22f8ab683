package issue

import "fmt"

// MalformedIdentifierError reports a plan identifier without a
// <class>.<module> shape.
type MalformedIdentifierError struct {
	ID string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed plan identifier %q: want <class>.<module>", e.ID)
}

// MissingRosterError reports a class document without a students key.
type MissingRosterError struct {
	ClassKey string
}

func (e *MissingRosterError) Error() string {
	return fmt.Sprintf("class %q has no students list", e.ClassKey)
}

// EmptyScheduleError reports a plan with no lecture dates.
type EmptyScheduleError struct {
	PlanID string
}

func (e *EmptyScheduleError) Error() string {
	return fmt.Sprintf("plan %q has no lecture dates", e.PlanID)
}

// WriteError reports a failure to write the issue file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
