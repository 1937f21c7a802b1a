package mapping

import (
	"net/http"
	"regexp"
)

// ParseMatcher converts a request descriptor into a Matcher.
//
// Accepted descriptors:
//   - string: ExactURL
//   - *regexp.Regexp: URLPattern
//   - func(*http.Request) bool or func(*http.Request) (bool, error): Predicate
//   - *http.Request: ExactRequest (the body is read and restored)
//   - any Matcher value
func ParseMatcher(descriptor interface{}) (Matcher, error) {
	var m Matcher
	switch v := descriptor.(type) {
	case nil:
		return nil, ErrMissingRequest
	case Matcher:
		m = v
	case string:
		m = ExactURL(v)
	case *regexp.Regexp:
		if v == nil {
			return nil, ErrMissingRequest
		}
		m = URLPattern{Regexp: v}
	case func(*http.Request) bool:
		if v == nil {
			return nil, ErrMissingRequest
		}
		m = Predicate(func(r *http.Request) (bool, error) { return v(r), nil })
	case func(*http.Request) (bool, error):
		m = Predicate(v)
	case *http.Request:
		if v == nil {
			return nil, ErrMissingRequest
		}
		stored, err := NewExactRequest(v)
		if err != nil {
			return nil, err
		}
		m = stored
	default:
		return nil, ErrInvalidRequestDescriptor
	}
	if err := validateMatcher(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseResolver converts a response descriptor into a Resolver.
//
// Accepted descriptors:
//   - *http.Response: Static (the body is read once and replayed per dispatch)
//   - func(*http.Request) *http.Response or
//     func(*http.Request) (*http.Response, error): Computed
//   - any Resolver value
func ParseResolver(descriptor interface{}) (Resolver, error) {
	var r Resolver
	switch v := descriptor.(type) {
	case nil:
		return nil, ErrMissingResponse
	case Resolver:
		r = v
	case *http.Response:
		if v == nil {
			return nil, ErrMissingResponse
		}
		s, err := StaticFrom(v)
		if err != nil {
			return nil, err
		}
		r = s
	case func(*http.Request) *http.Response:
		if v == nil {
			return nil, ErrMissingResponse
		}
		r = Computed(func(req *http.Request) (*http.Response, error) { return v(req), nil })
	case func(*http.Request) (*http.Response, error):
		r = Computed(v)
	default:
		return nil, ErrInvalidResponseDescriptor
	}
	if err := validateResolver(r); err != nil {
		return nil, err
	}
	return r, nil
}
