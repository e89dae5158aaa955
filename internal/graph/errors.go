package graph

import (
	"errors"
	"net/http"
)

var (
	// ErrTokenUnavailable is returned for every failed token acquisition,
	// whatever the underlying cause.
	ErrTokenUnavailable = errors.New("graph: access token unavailable")

	// ErrMalformedAuthorizationEndpoint indicates the discovery document's
	// authorization endpoint does not carry a tenant id where one is expected.
	ErrMalformedAuthorizationEndpoint = errors.New("graph: malformed authorization endpoint")

	// ErrInvalidEmail indicates an address that does not parse as an email.
	ErrInvalidEmail = errors.New("graph: invalid email address")

	// ErrMissingID indicates a successful response without an id field.
	ErrMissingID = errors.New("graph: response has no id")

	// ErrUserNotFound indicates a user could not be resolved from an email.
	ErrUserNotFound = errors.New("graph: user not found")

	ErrUnauthorised = errors.New("graph: unauthorised")
	ErrForbidden    = errors.New("graph: forbidden")
	ErrNotFound     = errors.New("graph: not found")
	ErrRateLimited  = errors.New("graph: rate limited")
	ErrBadRequest   = errors.New("graph: bad request")
	ErrServerError  = errors.New("graph: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
// Statuses below 400 map to nil.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
