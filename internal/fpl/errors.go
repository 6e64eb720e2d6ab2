package fpl

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the upstream answers 404.
	ErrNotFound = errors.New("fpl: not found")
	// ErrSchema is returned when a payload decodes but is missing required data.
	ErrSchema = errors.New("fpl: unexpected payload shape")
)

const maxErrorBody = 512

// StatusError is a non-2xx, non-404 upstream response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %d body=%s", e.URL, e.StatusCode, e.Body)
}

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
