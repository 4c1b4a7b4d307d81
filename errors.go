package spinny

import (
	"errors"
	"fmt"
	"strings"
)

// SetupError accumulates every failure seen before the render loop starts.
// All of them are reported together; none are recoverable.
type SetupError struct {
	errs []error
}

func (e *SetupError) Add(err error) {
	if err == nil {
		return
	}
	e.errs = append(e.errs, err)
}

func (e *SetupError) Addf(format string, args ...any) {
	e.Add(fmt.Errorf(format, args...))
}

// Err returns nil when nothing was recorded, so callers can `return errs.Err()`.
func (e *SetupError) Err() error {
	if e == nil || len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *SetupError) Messages() []string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func (e *SetupError) Error() string {
	return strings.Join(e.Messages(), "\n")
}

func (e *SetupError) Unwrap() []error {
	return e.errs
}

// RuntimeError is a failure inside a frame. The loop stops on the first one.
type RuntimeError struct {
	Stage string
	Err   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("frame %s: %v", e.Stage, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsSetup reports whether err happened before the render loop was entered.
func IsSetup(err error) bool {
	var se *SetupError
	return errors.As(err, &se)
}
