package domain

import "fmt"

// Error types for consistent error handling across the dashboard client.

// ErrMissingCredential indicates no session token is stored. The fetch
// layer returns it before any network call is attempted.
type ErrMissingCredential struct{}

func (e *ErrMissingCredential) Error() string {
	return "no session credential"
}

// ErrAuth indicates the backend rejected the bearer token (or the login
// credentials). The session is cleared when this is returned from an
// authenticated call.
type ErrAuth struct {
	Message string
}

func (e *ErrAuth) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthenticated"
}

// ErrTransient indicates the request could not complete (connection
// refused, timeout, DNS). It says nothing about credential validity and
// never clears the session.
type ErrTransient struct {
	Op  string
	Err error
}

func (e *ErrTransient) Error() string {
	return fmt.Sprintf("transient failure in %s: %v", e.Op, e.Err)
}

func (e *ErrTransient) Unwrap() error {
	return e.Err
}

// ErrExternalService indicates a non-auth failure reported by the bank API.
type ErrExternalService struct {
	Service string
	Status  int
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s status=%d]: %v", e.Service, e.Status, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrDownload indicates the transaction report could not be fetched or
// written. Purely local to the report flow; session state is untouched.
type ErrDownload struct {
	Err error
}

func (e *ErrDownload) Error() string {
	return fmt.Sprintf("report download failed: %v", e.Err)
}

func (e *ErrDownload) Unwrap() error {
	return e.Err
}
