package regsdk

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Default messages shown when the API gives no better one.
const (
	MsgNetworkFailure         = "Network error occurred while submitting registration"
	MsgExchangeNetworkFailure = "Network error occurred while signing in with Google"
	MsgExchangeFailure        = "Google authentication with backend failed"
	MsgRegistrationFailed     = "Registration failed. Please try again."
)

// Op names the API call a NetworkError interrupted.
type Op string

const (
	OpExchange Op = "exchange"
	OpRegister Op = "register"
)

// NetworkError means the request got no response.
type NetworkError struct {
	Op  Op
	Err error
}

func (e *NetworkError) message() string {
	if e.Op == OpExchange {
		return MsgExchangeNetworkFailure
	}
	return MsgNetworkFailure
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.message()
	}
	return e.message() + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the identity token exchange was rejected.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("identity exchange rejected (HTTP %d): %s", e.StatusCode, e.Message)
}

// ValidationError carries the API's per-field messages.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	return "registration rejected: " + e.Flatten()
}

// Flatten joins every field message with ", ", fields in sorted order.
func (e *ValidationError) Flatten() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var msgs []string
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f]...)
	}
	return strings.Join(msgs, ", ")
}

// GenericError is any other unsuccessful API response.
type GenericError struct {
	StatusCode int
	Message    string
}

func (e *GenericError) Error() string {
	return fmt.Sprintf("registration failed (HTTP %d): %s", e.StatusCode, e.Message)
}

// Message returns the user facing text for err. Errors not produced by this
// package yield the generic registration failure message.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		netErr  *NetworkError
		authErr *AuthError
		valErr  *ValidationError
		genErr  *GenericError
	)
	switch {
	case errors.As(err, &netErr):
		return netErr.message()
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &valErr):
		return valErr.Flatten()
	case errors.As(err, &genErr):
		return genErr.Message
	default:
		return MsgRegistrationFailed
	}
}
