package auth

import "fmt"

// FailureKind identifies why verification rejected a request. Every kind
// maps to HTTP 401; the code lets clients distinguish an expired token
// (re-authenticate) from a forged or misconfigured one (report).
type FailureKind string

const (
	FailureNoToken             FailureKind = "no_token"
	FailureServerMisconfigured FailureKind = "server_misconfigured"
	FailureTokenExpired        FailureKind = "token_expired"
	FailureTokenInvalid        FailureKind = "token_invalid"
)

// Error is a typed verification failure.
type Error struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind FailureKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// NewError builds a verification failure without a cause.
func NewError(kind FailureKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf extracts the failure kind from an error returned by this
// package. Unknown errors are treated as invalid tokens.
func KindOf(err error) FailureKind {
	if ae, ok := err.(*Error); ok {
		return ae.Kind
	}
	return FailureTokenInvalid
}
