package mapping

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getStatus(t *testing.T, c *Client, url string) int {
	t.Helper()
	resp, err := c.Get(url)
	require.NoError(t, err)
	_ = readBody(t, resp)
	return resp.StatusCode
}

func TestClientExactURL(t *testing.T) {
	c, _ := isolated()

	_, err := c.Map("http://a.ru", Status(201))
	require.NoError(t, err)

	assert.Equal(t, 201, getStatus(t, c, "http://a.ru"))
	assert.Equal(t, 404, getStatus(t, c, "http://b.ru"))
}

func TestClientUnmapAndUnmapAll(t *testing.T) {
	c, _ := isolated()

	idx0, err := c.Map("http://a.ru", Status(200))
	require.NoError(t, err)
	idx1, err := c.Map("http://b.ru", Status(201))
	require.NoError(t, err)

	assert.True(t, c.Unmap(idx0))
	assert.Equal(t, 404, getStatus(t, c, "http://a.ru"))
	assert.Equal(t, 201, getStatus(t, c, "http://b.ru"))

	assert.False(t, c.Unmap(idx0), "second unmap is a no-op")
	assert.Equal(t, 201, getStatus(t, c, "http://b.ru"))

	c.UnmapAll()
	assert.Equal(t, 404, getStatus(t, c, "http://a.ru"))
	assert.Equal(t, 404, getStatus(t, c, "http://b.ru"))
	assert.False(t, c.Unmap(idx1))
}

func TestClientGlobalFallbackAndOverride(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Map("http://zzz.ru", Status(400))
	require.NoError(t, err)

	c := NewClient(WithRegistry(registry))
	assert.Equal(t, 400, getStatus(t, c, "http://zzz.ru"), "global applies with an empty local table")

	idx, err := c.Map("http://zzz.ru", Status(403))
	require.NoError(t, err)
	assert.Equal(t, 403, getStatus(t, c, "http://zzz.ru"))

	other := NewClient(WithRegistry(registry))
	assert.Equal(t, 400, getStatus(t, other, "http://zzz.ru"), "local mappings are not shared")

	require.True(t, c.Unmap(idx))
	assert.Equal(t, 400, getStatus(t, c, "http://zzz.ru"))

	registry.UnmapAll()
	assert.Equal(t, 404, getStatus(t, c, "http://zzz.ru"))
}

func TestClientUnmapAllFallsThroughToGlobal(t *testing.T) {
	c, registry := isolated()
	_, err := registry.Map(MustURLPattern(`example\.com`), Status(202))
	require.NoError(t, err)
	_, err = c.Map("http://example.com/x", Status(201))
	require.NoError(t, err)

	c.UnmapAll()
	assert.Equal(t, 202, getStatus(t, c, "http://example.com/x"))
}

func TestClientPassthroughFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o600))
	fileURL := "file://" + filepath.ToSlash(path)

	c, _ := isolated()
	idx, err := c.MapPassthrough(regexp.MustCompile(`^file://`))
	require.NoError(t, err)

	resp, err := c.Get(fileURL)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "from disk", readBody(t, resp))

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Passthrough)

	require.True(t, c.Unmap(idx))
	assert.Equal(t, 404, getStatus(t, c, fileURL))
}

func TestClientPassthroughHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Real", "1")
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, r.URL.Path)
	}))
	defer srv.Close()

	c, _ := isolated(WithTransport(srv.Client().Transport))
	_, err := c.MapPassthrough(Path("/real/*"))
	require.NoError(t, err)
	_, err = c.Map(Path("/fake"), Static{StatusCode: 200, Body: []byte("fake")})
	require.NoError(t, err)

	resp, err := c.Get(srv.URL + "/real/thing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Real"))
	assert.Equal(t, "/real/thing", readBody(t, resp))

	resp, err = c.Get(srv.URL + "/fake")
	require.NoError(t, err)
	assert.Equal(t, "fake", readBody(t, resp))

	assert.Equal(t, 404, getStatus(t, c, srv.URL+"/elsewhere"))
}

func TestTransportUnwrapsInterceptingBase(t *testing.T) {
	inner := NewTransport(WithRegistry(NewRegistry()))
	outer := NewTransport(WithTransport(inner), WithRegistry(NewRegistry()))

	assert.Same(t, inner.base, outer.base)
	_, isInterceptor := outer.base.(*Transport)
	assert.False(t, isInterceptor)
}

func TestClientErrorsReachCaller(t *testing.T) {
	boom := errors.New("boom")
	c, _ := isolated()
	_, err := c.Map(func(*http.Request) (bool, error) { return false, boom }, Status(200))
	require.NoError(t, err)

	_, err = c.Get("http://a.example")
	assert.ErrorIs(t, err, boom)

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.ErrorIs(t, calls[0].Err, boom)
	assert.Zero(t, calls[0].StatusCode)
}

func TestClientJournal(t *testing.T) {
	c, registry := isolated()
	_, err := registry.Map("http://g.example", Status(202))
	require.NoError(t, err)
	_, err = c.Map("http://l.example", Status(201))
	require.NoError(t, err)

	getStatus(t, c, "http://l.example")
	getStatus(t, c, "http://g.example")
	getStatus(t, c, "http://none.example")

	calls := c.Calls()
	require.Len(t, calls, 3)

	assert.Equal(t, OriginLocal, calls[0].Origin)
	assert.Equal(t, 0, calls[0].Index)
	assert.Equal(t, 201, calls[0].StatusCode)

	assert.Equal(t, OriginGlobal, calls[1].Origin)
	assert.Equal(t, 202, calls[1].StatusCode)

	assert.Equal(t, OriginNone, calls[2].Origin)
	assert.Equal(t, -1, calls[2].Index)
	assert.Equal(t, 404, calls[2].StatusCode)

	ids := map[string]bool{}
	for _, call := range calls {
		assert.Len(t, call.ID, 36)
		ids[call.ID] = true
	}
	assert.Len(t, ids, 3)

	c.Interceptor().Journal().Reset()
	assert.Empty(t, c.Calls())
}

func TestClientJournalCapturesRequest(t *testing.T) {
	c, _ := isolated()
	_, err := c.Map(func(r *http.Request) bool {
		b, _ := io.ReadAll(r.Body)
		return string(b) == "ping"
	}, Status(200))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, "http://api.example/items", strings.NewReader("ping"))
	require.NoError(t, err)
	req.Header.Set("X-Trace", "abc")
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	calls := c.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ping", string(calls[0].Body))
	assert.Equal(t, "abc", calls[0].Header.Get("X-Trace"))

	req.Header.Set("X-Trace", "changed")
	assert.Equal(t, "abc", c.Calls()[0].Header.Get("X-Trace"))
}

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

func TestTransportLeavesCallerRequestIntact(t *testing.T) {
	c, _ := isolated()
	_, err := c.Map(func(r *http.Request) bool {
		b, _ := io.ReadAll(r.Body)
		return string(b) == "ping"
	}, Status(202))
	require.NoError(t, err)

	body := &trackedBody{Reader: strings.NewReader("ping")}
	req, err := http.NewRequest(http.MethodPost, "http://api.example/items", nil)
	require.NoError(t, err)
	req.Body = body

	resp, err := c.Interceptor().RoundTrip(req)
	require.NoError(t, err)
	_ = readBody(t, resp)

	assert.Equal(t, 202, resp.StatusCode)
	assert.Same(t, body, req.Body)
	assert.True(t, body.closed)
	assert.Equal(t, "ping", string(c.Calls()[0].Body))
}

func TestTransportRejectsNilRequest(t *testing.T) {
	c, _ := isolated()
	_, err := c.Interceptor().RoundTrip(nil)
	assert.ErrorIs(t, err, ErrMissingRequest)
}

func TestClientUsesRegistryHeaderToggle(t *testing.T) {
	c, registry := isolated()

	stored := newRequest(t, "GET", "http://a.example/x", "")
	_, err := c.Map(stored, Status(200))
	require.NoError(t, err)

	// http.Client sends the request as built; the default User-Agent is
	// added later by the real transport, which is never reached here.
	req := newRequest(t, "GET", "http://a.example/x", "")
	req.Header.Set("User-Agent", "Go-http-client/1.1")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.Do(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	registry.SetPrepareHeaders(true)
	req = newRequest(t, "GET", "http://a.example/x", "")
	req.Header.Set("User-Agent", "Go-http-client/1.1")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err = c.Do(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	registry.Reset()
	assert.False(t, registry.PrepareHeaders())
	assert.Equal(t, 0, registry.Table().Len())
}

func TestDefaultRegistrySugar(t *testing.T) {
	t.Cleanup(func() {
		DefaultRegistry().Reset()
	})

	idx, err := Map("http://default.example", Status(418))
	require.NoError(t, err)

	c := NewClient()
	assert.Same(t, DefaultRegistry(), c.Interceptor().Registry())
	assert.Equal(t, 418, getStatus(t, c, "http://default.example"))

	pidx, err := MapPassthrough("http://never.example")
	require.NoError(t, err)
	assert.Equal(t, idx+1, pidx)

	SetPrepareHeaders(true)
	assert.True(t, DefaultRegistry().PrepareHeaders())

	assert.True(t, Unmap(idx))
	assert.Equal(t, 404, getStatus(t, c, "http://default.example"))

	UnmapAll()
	assert.Equal(t, 0, DefaultRegistry().Table().Len())
}
