package fathom

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-success response from the Fathom API,
// and for transport failures (StatusCode 0). The search and tool layers
// surface these unchanged; nothing in this module retries.
type APIError struct {
	// StatusCode is the HTTP status of the response, or 0 when the
	// request never produced a response.
	StatusCode int

	// Message describes the failure in human-readable form.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fathom: %s", e.Message)
	}
	return fmt.Sprintf("fathom: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsRateLimited reports whether err is an APIError with status 429.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
