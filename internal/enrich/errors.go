package enrich

import (
	"errors"
	"fmt"
)

// ErrFatal is the single error kind callers see for any failure after the
// input was accepted.
var ErrFatal = errors.New("enrichment failed")

// FatalError reports a failed enrichment. It matches ErrFatal with
// errors.Is and unwraps to the underlying cause.
type FatalError struct {
	Handler string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Handler, ErrFatal)
	}
	return fmt.Sprintf("%s: %s: %v", e.Handler, ErrFatal, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Is makes every FatalError match ErrFatal.
func (e *FatalError) Is(target error) bool { return target == ErrFatal }

func fatal(handler string, err error) error {
	return &FatalError{Handler: handler, Err: err}
}
