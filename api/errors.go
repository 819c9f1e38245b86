package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed backend response. Detail carries the server-provided
// message when the backend supplied one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("rental api: %s", http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Detail extracts the server-provided message from err, falling back to the
// given generic message. Validation and transient failures are surfaced to the
// user verbatim when the backend said something useful.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
