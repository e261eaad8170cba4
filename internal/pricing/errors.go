package pricing

import (
	"errors"
	"fmt"
)

// Kind classifies a per-location failure. The batch never aborts on any of
// these; each becomes a reported skip.
type Kind string

const (
	KindDataNotFound       Kind = "data_not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindConfigError        Kind = "config_error"
	KindCalculationFailure Kind = "calculation_failure"
)

// Error is a per-location pipeline failure.
type Error struct {
	Kind     Kind
	Location string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Location != "" {
		msg = fmt.Sprintf("%s (location %q)", msg, e.Location)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can test errors.Is(err, &Error{Kind: ...}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func dataNotFound(location, op string, err error) *Error {
	return &Error{Kind: KindDataNotFound, Location: location, Op: op, Err: err}
}

func invalidInput(location, op string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Location: location, Op: op, Err: err}
}

func configError(location, op string, err error) *Error {
	return &Error{Kind: KindConfigError, Location: location, Op: op, Err: err}
}

// KindOf extracts the Kind from an error chain, or "" if it carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
