package mapping

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/getmockd/mockhttp/pkg/logging"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method, url string, body string) *http.Request {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	return req
}

func captureLogger() (*bytes.Buffer, Option) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:  logging.LevelDebug,
		Format: logging.FormatJSON,
		Output: &buf,
	})
	return &buf, WithLogger(logger)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// isolated returns a client bound to a fresh registry.
func isolated(opts ...Option) (*Client, *Registry) {
	registry := NewRegistry(opts...)
	return NewClient(append(opts, WithRegistry(registry))...), registry
}
