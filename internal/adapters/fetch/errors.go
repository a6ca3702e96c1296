package fetch

import (
	"errors"
	"fmt"
)

// Sentinel kinds for fetch errors.
var (
	// ErrTransport covers network errors, timeouts and error statuses.
	ErrTransport = errors.New("transport failure")
	// ErrDecode reports a body that is not a series payload.
	ErrDecode = errors.New("decode failure")
)

// StatusError is returned for responses with status >= 400.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Unwrap lets errors.Is match ErrTransport.
func (e *StatusError) Unwrap() error { return ErrTransport }
