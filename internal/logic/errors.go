package logic

import (
	"errors"
	"fmt"

	"github.com/fpladvisor/advisor-api/internal/fpl"
)

var (
	// ErrValidation marks errors caused by bad caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing manager, league or squad.
	ErrNotFound = errors.New("not found")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

// ValidationError returns an error that matches ErrValidation and carries
// a message fit for the caller.
func ValidationError(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// DefaultNotFoundMessage is shown for a not-found that carries no message of
// its own, such as a raw upstream 404.
const DefaultNotFoundMessage = "not found: check the id or try a different gameweek"

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }
func (e *notFoundError) Unwrap() error { return ErrNotFound }

// NotFoundError returns an error that matches ErrNotFound and carries a
// message fit for the caller.
func NotFoundError(format string, args ...any) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundMessage returns the caller-facing message of a not-found error.
// Upstream paths and wrapped context never appear in it.
func NotFoundMessage(err error) string {
	var nf *notFoundError
	if errors.As(err, &nf) {
		return nf.msg
	}
	return DefaultNotFoundMessage
}

// IsNotFound reports whether err is a not-found from this package or from
// the FPL API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fpl.ErrNotFound)
}
