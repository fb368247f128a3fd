package client

import (
	"fmt"
)

// AuthError is returned when a token could not be acquired for the configured
// authentication flow. Callers can separate authentication failures from Graph
// API failures with errors.As.
type AuthError struct {
	Err error
}

func (e AuthError) Error() string {
	return fmt.Sprintf("authenticating with Azure AD: %v", e.Err)
}

func (e AuthError) Unwrap() error {
	return e.Err
}
