package mapping

import (
	"errors"
	"net/http"
)

// Errors returned when registering a mapping. They are fatal for the call:
// nothing is added to the table.
var (
	// ErrMissingRequest indicates Map or Add received no request descriptor.
	ErrMissingRequest = errors.New("mapping: request descriptor is required")

	// ErrMissingResponse indicates Map or Add received no response descriptor.
	ErrMissingResponse = errors.New("mapping: response descriptor is required")

	// ErrInvalidRequestDescriptor indicates a request descriptor of an unsupported type.
	ErrInvalidRequestDescriptor = errors.New("mapping: request descriptor must be a URL string, *regexp.Regexp, predicate func, *http.Request or Matcher")

	// ErrInvalidResponseDescriptor indicates a response descriptor of an unsupported type.
	ErrInvalidResponseDescriptor = errors.New("mapping: response descriptor must be an *http.Response, response func or Resolver")

	// ErrInvalidMatcher indicates a Matcher value that cannot be evaluated,
	// such as a URLPattern without a compiled expression.
	ErrInvalidMatcher = errors.New("mapping: invalid matcher")

	// ErrInvalidResolver indicates a Resolver value that cannot be evaluated.
	ErrInvalidResolver = errors.New("mapping: invalid resolver")
)

// ErrNoPassthrough is returned by dispatch when a Passthrough entry is
// selected but no underlying transport was configured.
var ErrNoPassthrough = errors.New("mapping: no passthrough transport configured")

// PassthroughError wraps a failure returned by the real transport while
// serving a Passthrough mapping. It lets callers tell transport errors apart
// from errors raised by their own predicates and computed resolvers.
type PassthroughError struct {
	// Request is the request that was forwarded.
	Request *http.Request
	// Err is the error returned by the underlying transport.
	Err error
}

func (e *PassthroughError) Error() string {
	if e.Request == nil || e.Request.URL == nil {
		return "mapping: passthrough: " + e.Err.Error()
	}
	return "mapping: passthrough " + e.Request.Method + " " + e.Request.URL.String() + ": " + e.Err.Error()
}

func (e *PassthroughError) Unwrap() error {
	return e.Err
}
