package airtable

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the base ID or access token is missing.
// No request is made in that case.
var ErrNotConfigured = errors.New("airtable credentials not configured")

// TransportError reports a non-success response from the API.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("airtable request failed: %d: %s", e.Status, e.Body)
}

// IsTransport reports whether err wraps a *TransportError and returns it.
func IsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
