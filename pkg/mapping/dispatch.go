package mapping

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/getmockd/mockhttp/pkg/logging"
)

// Origin identifies the scope that answered a request.
type Origin string

// Origins.
const (
	OriginLocal  Origin = "local"
	OriginGlobal Origin = "global"
	OriginNone   Origin = "none"
)

// Resolution describes how a request was answered.
type Resolution struct {
	// Response is the response returned to the caller.
	Response *http.Response
	// Origin is the scope of the matching entry, or OriginNone when the
	// default response was served.
	Origin Origin
	// Index is the slot of the matching entry, or -1.
	Index int
	// Passthrough is true when the real transport produced Response.
	Passthrough bool
}

// Dispatcher resolves requests against a local and a global table.
//
// The zero value is usable; it logs nothing and fails Passthrough entries
// with ErrNoPassthrough.
type Dispatcher struct {
	// Logger receives warnings about entries that cannot be evaluated.
	Logger *slog.Logger

	// Passthrough is the real transport used by Passthrough entries. It
	// must not route back into this dispatcher.
	Passthrough http.RoundTripper

	// PrepareHeaders adds the transport's default headers to both sides of
	// an ExactRequest comparison.
	PrepareHeaders bool
}

// Dispatch resolves req and returns the response only.
func (d Dispatcher) Dispatch(req *http.Request, local, global *Table) (*http.Response, error) {
	res, err := d.Resolve(req, local, global)
	if err != nil {
		return nil, err
	}
	return res.Response, nil
}

// Resolve scans the live entries of local and then global, in insertion
// order, and answers req with the first entry whose matcher accepts it.
// Later entries are not evaluated. When nothing matches, the NotFound
// response is returned. Either table may be nil. Neither is modified.
//
// Errors from predicates and computed resolvers are returned unchanged.
func (d Dispatcher) Resolve(req *http.Request, local, global *Table) (*Resolution, error) {
	logger := logging.OrNop(d.Logger)

	in, err := newInbound(req, d.PrepareHeaders)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates(local, global) {
		matched, err := d.match(logger, c, in)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		res, ok, err := d.resolve(logger, c, in)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		logger.Debug("request mapped",
			"method", req.Method,
			"url", in.url,
			"scope", c.origin,
			"index", c.entry.Index,
		)
		return res, nil
	}

	logger.Debug("request unmapped", "method", req.Method, "url", in.url)
	return &Resolution{Response: NotFound(req), Origin: OriginNone, Index: -1}, nil
}

type candidate struct {
	origin Origin
	entry  Entry
}

// candidates snapshots local then global live entries.
func candidates(local, global *Table) []candidate {
	var out []candidate
	for _, tc := range []struct {
		table  *Table
		origin Origin
	}{{local, OriginLocal}, {global, OriginGlobal}} {
		if tc.table == nil {
			continue
		}
		for _, e := range tc.table.Entries() {
			out = append(out, candidate{origin: tc.origin, entry: e})
		}
	}
	return out
}

// match evaluates one matcher. Matchers dispatch cannot evaluate are
// logged and treated as a miss.
func (d Dispatcher) match(logger *slog.Logger, c candidate, in *inbound) (bool, error) {
	switch m := c.entry.Matcher.(type) {
	case ExactURL:
		return in.url == string(m), nil
	case URLPattern:
		if m.Regexp != nil {
			return m.Regexp.MatchString(in.url), nil
		}
	case Predicate:
		if m != nil {
			in.rewind()
			return m(in.req)
		}
	case *ExactRequest:
		if m != nil {
			stored, err := m.canonical(in.prepare)
			if err != nil {
				logger.Warn("skipping mapping: stored request cannot be canonicalized",
					"scope", c.origin, "index", c.entry.Index, "error", err)
				return false, nil
			}
			actual, err := in.canonical()
			if err != nil {
				return false, err
			}
			return stored == actual, nil
		}
	}

	logger.Warn("skipping mapping: unrecognized matcher",
		"scope", c.origin,
		"index", c.entry.Index,
		"type", fmt.Sprintf("%T", c.entry.Matcher),
	)
	return false, nil
}

// resolve produces the response for a matched entry. ok is false when the
// resolver cannot be evaluated, in which case scanning continues.
func (d Dispatcher) resolve(logger *slog.Logger, c candidate, in *inbound) (*Resolution, bool, error) {
	res := &Resolution{Origin: c.origin, Index: c.entry.Index}

	switch r := c.entry.Resolver.(type) {
	case Static:
		res.Response = r.Response(in.req)
		return res, true, nil

	case Computed:
		if r == nil {
			break
		}
		in.rewind()
		resp, err := r(in.req)
		if err != nil {
			return nil, false, err
		}
		if resp == nil {
			logger.Warn("computed response was nil, serving not found",
				"scope", c.origin, "index", c.entry.Index)
			resp = NotFound(in.req)
		}
		res.Response = resp
		return res, true, nil

	case Passthrough:
		if d.Passthrough == nil {
			return nil, false, ErrNoPassthrough
		}
		in.rewind()
		resp, err := d.Passthrough.RoundTrip(in.req)
		if err != nil {
			return nil, false, &PassthroughError{Request: in.req, Err: err}
		}
		res.Response = resp
		res.Passthrough = true
		return res, true, nil
	}

	logger.Warn("skipping mapping: unrecognized resolver",
		"scope", c.origin,
		"index", c.entry.Index,
		"type", fmt.Sprintf("%T", c.entry.Resolver),
	)
	return nil, false, nil
}

// inbound caches what matchers need from the request being dispatched.
type inbound struct {
	req     *http.Request
	url     string
	body    []byte
	prepare bool

	canon     string
	canonErr  error
	canonDone bool
}

func newInbound(req *http.Request, prepare bool) (*inbound, error) {
	if req == nil {
		return nil, ErrMissingRequest
	}
	body, err := requestBody(req)
	if err != nil {
		return nil, fmt.Errorf("mapping: read request body: %w", err)
	}
	in := &inbound{req: req, body: body, prepare: prepare}
	if req.URL != nil {
		in.url = req.URL.String()
	}
	return in, nil
}

// rewind resets the request body so the next reader sees all of it.
func (in *inbound) rewind() {
	if in.body != nil {
		in.req.Body = io.NopCloser(bytes.NewReader(in.body))
	}
}

func (in *inbound) canonical() (string, error) {
	if !in.canonDone {
		in.canon, in.canonErr = canonicalize(in.req.Method, in.url, in.req.Header, in.body, in.prepare)
		in.canonDone = true
	}
	return in.canon, in.canonErr
}
