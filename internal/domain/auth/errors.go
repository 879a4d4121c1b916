package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the orchestrator and its adapters.
var (
	// ErrNotAuthenticated is returned when a mutating call is attempted
	// with no active account.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoginInProgress is returned when an interactive login is started
	// while another one is still in flight. The second call fails
	// immediately; it is never queued.
	ErrLoginInProgress = errors.New("login already in progress")

	// ErrSessionExpired is returned when restore-time revalidation fails or
	// a key-pair identity is no longer live.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotInitialized is returned when the orchestrator is used before Init.
	ErrNotInitialized = errors.New("client not initialized")

	// ErrRecordInvalid is returned when a persisted auth record fails to
	// decode (bad JSON, unknown version, unknown tag). Callers treat it the
	// same as an absent record.
	ErrRecordInvalid = errors.New("auth record invalid")
)

// ValidationError reports malformed input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// VerifierError reports a failed external credential exchange: the verifier
// rejected the credential or returned no ticket.
type VerifierError struct {
	Provider Provider
	Reason   string
	Cause    error
}

func (e *VerifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("verifier exchange (%s): %s: %v", e.Provider, e.Reason, e.Cause)
	}
	return fmt.Sprintf("verifier exchange (%s): %s", e.Provider, e.Reason)
}

func (e *VerifierError) Unwrap() error { return e.Cause }

// BackendRejection is an explicit err result from a backend call. It is a
// business-rule failure, not a transport fault; the call reached the backend.
type BackendRejection struct {
	Method string
	Reason string
}

func (e *BackendRejection) Error() string {
	return fmt.Sprintf("backend rejected %s: %s", e.Method, e.Reason)
}

// TransportError is a network or call-layer failure: the call may never have
// reached the backend.
type TransportError struct {
	Method string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("call %s: %v", e.Method, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
