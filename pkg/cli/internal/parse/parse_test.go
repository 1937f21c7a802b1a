package parse

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		in         string
		delims     []rune
		key, value string
		ok         bool
	}{
		{"a:b", nil, "a", "b", true},
		{"a=b:c", []rune{':', '='}, "a", "b:c", true},
		{"a=b", nil, "", "", false},
		{"Authorization: Bearer x:y", nil, "Authorization", " Bearer x:y", true},
	}
	for _, tt := range tests {
		key, value, ok := KeyValue(tt.in, tt.delims...)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.key, key, tt.in)
		assert.Equal(t, tt.value, value, tt.in)
	}
}

func TestHeaders(t *testing.T) {
	h, err := Headers([]string{"X-Tenant: acme", "accept=text/plain", "X-Tenant: beta"})
	require.NoError(t, err)
	assert.Equal(t, http.Header{
		"X-Tenant": {"acme", "beta"},
		"Accept":   {"text/plain"},
	}, h)

	_, err = Headers([]string{"novalue"})
	assert.Error(t, err)
	_, err = Headers([]string{": x"})
	assert.Error(t, err)
	_, err = Headers([]string{"Bad Name: x"})
	assert.ErrorContains(t, err, "invalid header name")
	_, err = Headers([]string{"X-Ok: a\x00b"})
	assert.ErrorContains(t, err, "invalid value")
}
