package api

import (
	"fmt"
)

// Kind is the closed set of API failure categories. Every non-2xx response
// maps to exactly one Kind before it reaches application code; raw HTTP
// status codes never leak past this package.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindRateLimit      Kind = "rate_limit"
	KindServer         Kind = "server"
	KindGeneric        Kind = "generic"
)

// APIError is a typed application-level failure decoded from an HTTP error
// response. It is a normal error value, not a crash signal.
type APIError struct {
	Kind    Kind
	Status  int
	Code    string
	Message string

	// Details carries per-field validation messages for KindValidation.
	Details map[string][]string

	// RetryAfter is the server-suggested wait in seconds for KindRateLimit,
	// 0 when the server did not say.
	RetryAfter int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FieldError returns the first validation message recorded for field,
// or "" when there is none.
func (e *APIError) FieldError(field string) string {
	msgs := e.Details[field]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

// AllFieldErrors returns the full field→messages map (nil when the error
// carries no validation details).
func (e *APIError) AllFieldErrors() map[string][]string {
	return e.Details
}

// Classify maps an HTTP status plus decoded error-body fields to exactly one
// taxonomy variant. It is total: any integer status yields a valid *APIError
// and it never panics.
func Classify(status int, message, code string, details map[string][]string) *APIError {
	e := &APIError{Status: status, Code: code, Message: message}

	switch status {
	case 401:
		e.Kind = KindAuthentication
	case 403:
		e.Kind = KindAuthorization
	case 404:
		e.Kind = KindNotFound
	case 422:
		e.Kind = KindValidation
		e.Details = details
	case 429:
		e.Kind = KindRateLimit
	case 500, 502, 503, 504:
		e.Kind = KindServer
	default:
		e.Kind = KindGeneric
	}

	return e
}

// NetworkError wraps a transport-level failure (DNS, connection refused,
// timeout): the request never produced an HTTP response, so there is no
// status to classify.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
