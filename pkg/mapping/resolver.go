package mapping

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Resolver produces the response for a matched request.
//
// The set of resolvers is closed: Static, Computed and Passthrough.
type Resolver interface {
	// Kind names the variant for diagnostics.
	Kind() string
	isResolver()
}

// Static is a canned response. Each dispatch materializes a fresh
// *http.Response from it, so the body can be read by every caller.
// A zero StatusCode is served as 200. Status and the protocol version are
// derived from StatusCode and HTTP/1.1 when left empty.
type Static struct {
	StatusCode int
	Status     string
	Proto      string
	ProtoMajor int
	ProtoMinor int
	Header     http.Header
	Trailer    http.Header
	Body       []byte
}

// Status returns a Static response with the given status code and no body.
func Status(code int) Static {
	return Static{StatusCode: code}
}

// StaticFrom snapshots resp into a Static. The body of resp is read and
// closed.
func StaticFrom(resp *http.Response) (Static, error) {
	if resp == nil {
		return Static{}, ErrMissingResponse
	}
	s := Static{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Proto:      resp.Proto,
		ProtoMajor: resp.ProtoMajor,
		ProtoMinor: resp.ProtoMinor,
		Header:     resp.Header.Clone(),
		Trailer:    resp.Trailer.Clone(),
	}
	if resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return Static{}, fmt.Errorf("mapping: read response body: %w", err)
		}
		s.Body = body
	}
	return s, nil
}

// Kind implements Resolver.
func (Static) Kind() string { return "static" }
func (Static) isResolver() {}

// Response materializes the canned response for req.
func (s Static) Response(req *http.Request) *http.Response {
	code := s.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	resp := newResponse(req, code, s.Header, s.Body)
	if s.Status != "" {
		resp.Status = s.Status
	}
	if s.Proto != "" {
		resp.Proto = s.Proto
		resp.ProtoMajor, resp.ProtoMinor = s.ProtoMajor, s.ProtoMinor
		if s.ProtoMajor == 0 {
			if major, minor, ok := http.ParseHTTPVersion(s.Proto); ok {
				resp.ProtoMajor, resp.ProtoMinor = major, minor
			}
		}
	}
	resp.Trailer = s.Trailer.Clone()
	return resp
}

// Computed builds a response from the incoming request. Its result is
// returned unaltered; a returned error aborts dispatch.
type Computed func(*http.Request) (*http.Response, error)

// Kind implements Resolver.
func (Computed) Kind() string { return "computed" }
func (Computed) isResolver() {}

// Passthrough forwards the request to the real transport captured when the
// interceptor was built, and returns its result as-is.
type Passthrough struct{}

// Kind implements Resolver.
func (Passthrough) Kind() string { return "passthrough" }
func (Passthrough) isResolver() {}

// NotFound returns the response served when no mapping matches: status 404
// with an empty body. Every call returns a new, identical value.
func NotFound(req *http.Request) *http.Response {
	return newResponse(req, http.StatusNotFound, nil, nil)
}

func newResponse(req *http.Request, code int, header http.Header, body []byte) *http.Response {
	h := header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

func validateResolver(r Resolver) error {
	switch v := r.(type) {
	case nil:
		return ErrMissingResponse
	case Static, Passthrough:
		return nil
	case Computed:
		if v == nil {
			return fmt.Errorf("%w: nil Computed", ErrInvalidResolver)
		}
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidResolver, r)
	}
	return nil
}
