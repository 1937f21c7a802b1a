package mapping

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Headers the standard transport adds on its own when they are missing.
// With header preparation enabled, both sides of an ExactRequest comparison
// get them, so a stored request built by hand still equals the request the
// client actually sends.
const (
	defaultUserAgent      = "Go-http-client/1.1"
	defaultAcceptEncoding = "gzip"
)

// canonicalRequest is the comparison form of a request. encoding/json
// writes map keys sorted, which makes header order irrelevant.
type canonicalRequest struct {
	Method string              `json:"method"`
	URL    string              `json:"url"`
	Header map[string][]string `json:"header"`
	Body   string              `json:"body"`
}

func canonicalize(method, rawURL string, header http.Header, body []byte, prepare bool) (string, error) {
	if method == "" {
		method = http.MethodGet
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("canonicalize url %q: %w", rawURL, err)
	}

	h := make(map[string][]string, len(header))
	for k, v := range header {
		ck := http.CanonicalHeaderKey(k)
		h[ck] = append(h[ck], v...)
	}
	if prepare {
		prepareHeaders(h, body)
	}

	b, err := json.Marshal(canonicalRequest{
		Method: strings.ToUpper(method),
		URL:    u.String(),
		Header: h,
		Body:   string(body),
	})
	if err != nil {
		return "", fmt.Errorf("canonicalize request: %w", err)
	}
	return string(b), nil
}

// prepareHeaders fills in the headers the transport would send by default.
// Keys must already be canonical.
func prepareHeaders(h map[string][]string, body []byte) {
	if _, ok := h["User-Agent"]; !ok {
		h["User-Agent"] = []string{defaultUserAgent}
	}
	if _, ok := h["Accept-Encoding"]; !ok {
		h["Accept-Encoding"] = []string{defaultAcceptEncoding}
	}
	if _, ok := h["Content-Length"]; !ok && len(body) > 0 {
		h["Content-Length"] = []string{strconv.Itoa(len(body))}
	}
}
