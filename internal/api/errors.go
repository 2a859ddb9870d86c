package api

import (
	"context"
	"errors"
	"net/http"
)

// Kind classifies an API failure so callers can branch without inspecting
// message text.
type Kind string

const (
	// KindUnauthorized indicates a rejected or expired credential (HTTP 401)
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden indicates the credential lacks access (HTTP 403)
	KindForbidden Kind = "forbidden"
	// KindNotFound indicates the resource does not exist (HTTP 404)
	KindNotFound Kind = "not_found"
	// KindServerError indicates a 5xx response from the backend
	KindServerError Kind = "server_error"
	// KindTimeout indicates the request exceeded its deadline
	KindTimeout Kind = "timeout"
	// KindTransport indicates the request never produced a response
	KindTransport Kind = "transport"
	// KindMalformed indicates a 2xx response whose body could not be decoded
	KindMalformed Kind = "malformed"
	// KindRequest covers remaining non-2xx statuses (4xx client errors)
	KindRequest Kind = "request"
)

// Error is the structured failure returned by the client. Message carries the
// best human-readable description the backend offered; Kind and Status are the
// machine-readable view.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// kindForStatus maps an HTTP status code to a failure kind
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServerError
	default:
		return KindRequest
	}
}

// transportError classifies a failed round trip. Deadline expiry becomes
// KindTimeout; everything else is KindTransport.
func transportError(err error) *Error {
	kind := KindTransport
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{
		Kind:    kind,
		Message: "network error",
		Cause:   err,
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsUnauthorized reports whether err is a credential rejection. The session
// layer uses this to decide when the persisted token should be purged.
func IsUnauthorized(err error) bool {
	return IsKind(err, KindUnauthorized)
}
