package mapping

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// Matcher decides whether an outgoing request is served by a mapping.
//
// The set of matchers is closed: ExactURL, URLPattern, Predicate and
// *ExactRequest. Use the predicate builders in this package for anything
// the first three do not cover.
type Matcher interface {
	// Kind names the variant for diagnostics.
	Kind() string
	isMatcher()
}

// ExactURL matches requests whose full URL string equals the value.
type ExactURL string

// Kind implements Matcher.
func (ExactURL) Kind() string { return "url" }
func (ExactURL) isMatcher() {}

// URLPattern matches requests whose URL contains a match for the expression.
// The expression is not implicitly anchored.
type URLPattern struct {
	Regexp *regexp.Regexp
}

// NewURLPattern compiles expr into a URLPattern.
func NewURLPattern(expr string) (URLPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return URLPattern{}, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}
	return URLPattern{Regexp: re}, nil
}

// MustURLPattern is like NewURLPattern but panics on a malformed expression.
func MustURLPattern(expr string) URLPattern {
	return URLPattern{Regexp: regexp.MustCompile(expr)}
}

// Kind implements Matcher.
func (URLPattern) Kind() string { return "pattern" }
func (URLPattern) isMatcher() {}

// Predicate is an arbitrary test on the incoming request. A returned error
// aborts dispatch and is passed back to the caller unchanged.
//
// The request body may be read freely; it is rewound before every
// predicate runs.
type Predicate func(*http.Request) (bool, error)

// Kind implements Matcher.
func (Predicate) Kind() string { return "predicate" }
func (Predicate) isMatcher() {}

// ExactRequest matches requests structurally equal to a stored request.
// Method, URL, headers and body are compared through a canonical
// serialization, so header order and header name casing do not matter.
type ExactRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// NewExactRequest captures r as an ExactRequest. The body of r is read and
// restored, so r can still be sent afterwards.
func NewExactRequest(r *http.Request) (*ExactRequest, error) {
	if r == nil {
		return nil, ErrMissingRequest
	}
	body, err := requestBody(r)
	if err != nil {
		return nil, fmt.Errorf("mapping: read stored request body: %w", err)
	}
	stored := &ExactRequest{
		Method: r.Method,
		Header: r.Header.Clone(),
		Body:   body,
	}
	if r.URL != nil {
		stored.URL = r.URL.String()
	}
	return stored, nil
}

// Kind implements Matcher.
func (*ExactRequest) Kind() string { return "request" }
func (*ExactRequest) isMatcher() {}

func (e *ExactRequest) canonical(prepare bool) (string, error) {
	return canonicalize(e.Method, e.URL, e.Header, e.Body, prepare)
}

// validateMatcher rejects values that dispatch would not be able to evaluate.
func validateMatcher(m Matcher) error {
	switch v := m.(type) {
	case nil:
		return ErrMissingRequest
	case ExactURL:
		return nil
	case URLPattern:
		if v.Regexp == nil {
			return fmt.Errorf("%w: URLPattern has no expression", ErrInvalidMatcher)
		}
	case Predicate:
		if v == nil {
			return fmt.Errorf("%w: nil Predicate", ErrInvalidMatcher)
		}
	case *ExactRequest:
		if v == nil {
			return fmt.Errorf("%w: nil ExactRequest", ErrInvalidMatcher)
		}
		if _, err := v.canonical(false); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
		}
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidMatcher, m)
	}
	return nil
}

// requestBody drains r.Body and replaces it with a rewindable copy.
func requestBody(r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return body, nil
}
