package mappingtest

import (
	"encoding/json"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/mockhttp/internal/matching"
	"github.com/getmockd/mockhttp/pkg/mapping"
)

// RecordedCall is a journaled request with assertion helpers.
type RecordedCall struct {
	mapping.Call
	t testing.TB
}

func (c *RecordedCall) matches(method, target string) bool {
	if method != "" && !strings.EqualFold(c.Method, method) {
		return false
	}
	if target == "" {
		return true
	}
	if strings.Contains(target, "://") {
		return c.URL == target
	}
	u, err := url.Parse(c.URL)
	return err == nil && matching.MatchPath(target, u.Path)
}

// AssertMethod asserts that the request used the expected HTTP method.
func (c *RecordedCall) AssertMethod(expected string) {
	c.t.Helper()
	if !strings.EqualFold(c.Method, expected) {
		c.t.Errorf("request method mismatch\nexpected: %q\nactual: %q", expected, c.Method)
	}
}

// AssertHeader asserts that the request had the header with the expected
// value.
func (c *RecordedCall) AssertHeader(key, expected string) {
	c.t.Helper()
	values := c.Header.Values(key)
	if len(values) == 0 {
		c.t.Errorf("request does not have header %q", key)
		return
	}
	for _, v := range values {
		if v == expected {
			return
		}
	}
	c.t.Errorf("header %q value mismatch\nexpected: %q\nactual: %q", key, expected, values)
}

// AssertQueryParam asserts that the request had the query parameter with
// the expected value.
func (c *RecordedCall) AssertQueryParam(key, expected string) {
	c.t.Helper()
	u, err := url.Parse(c.URL)
	if err != nil {
		c.t.Errorf("request URL %q does not parse: %v", c.URL, err)
		return
	}
	q := u.Query()
	if !q.Has(key) {
		c.t.Errorf("request does not have query parameter %q", key)
		return
	}
	if actual := q.Get(key); actual != expected {
		c.t.Errorf("query parameter %q value mismatch\nexpected: %q\nactual: %q", key, expected, actual)
	}
}

// AssertBody asserts that the request body exactly matches expected.
func (c *RecordedCall) AssertBody(expected string) {
	c.t.Helper()
	if string(c.Body) != expected {
		c.t.Errorf("request body does not match\nexpected: %q\nactual: %q", expected, c.Body)
	}
}

// AssertBodyContains asserts that the request body contains substr.
func (c *RecordedCall) AssertBodyContains(substr string) {
	c.t.Helper()
	if !strings.Contains(string(c.Body), substr) {
		c.t.Errorf("request body does not contain %q\nbody: %s", substr, c.Body)
	}
}

// AssertJSONBody asserts that the request body is JSON equal to expected.
// expected can be a string, []byte, or any value that will be JSON encoded.
func (c *RecordedCall) AssertJSONBody(expected any) {
	c.t.Helper()

	var raw []byte
	switch v := expected.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			c.t.Errorf("failed to marshal expected value: %v", err)
			return
		}
		raw = data
	}

	var want, got any
	if err := json.Unmarshal(raw, &want); err != nil {
		c.t.Errorf("failed to parse expected JSON: %v", err)
		return
	}
	if err := json.Unmarshal(c.Body, &got); err != nil {
		c.t.Errorf("request body is not valid JSON: %v\nbody: %s", err, c.Body)
		return
	}
	if !reflect.DeepEqual(got, want) {
		c.t.Errorf("request body does not match expected JSON\nexpected: %s\nactual: %s", raw, c.Body)
	}
}

// JSONField returns the first value at a JSONPath expression in the
// request body, or nil when the body is not JSON or nothing matches.
func (c *RecordedCall) JSONField(path string) any {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil
	}
	data, err := oj.Parse(c.Body)
	if err != nil {
		return nil
	}
	if results := x.Get(data); len(results) > 0 {
		return results[0]
	}
	return nil
}

// AssertJSONField asserts that the JSONPath expression selects a value
// equal to expected. Numbers compare by value.
func (c *RecordedCall) AssertJSONField(path string, expected any) {
	c.t.Helper()
	actual := c.JSONField(path)
	if actual == nil {
		c.t.Errorf("JSON field %q not found in request body: %s", path, c.Body)
		return
	}
	if !reflect.DeepEqual(normalize(actual), normalize(expected)) {
		c.t.Errorf("JSON field %q mismatch\nexpected: %v (%T)\nactual: %v (%T)",
			path, expected, expected, actual, actual)
	}
}

// normalize maps numeric types onto float64.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
