// Package mappingtest provides helpers for using request mappings in Go
// tests.
//
// A Mock owns an isolated registry and an intercepting client, so tests
// never share mappings and never reach the network:
//
//	func TestFetchUser(t *testing.T) {
//	    m := mappingtest.New(t)
//	    m.On("GET", "https://api.example.com/users/123").
//	        WithStatus(200).
//	        WithJSON(map[string]string{"id": "123"}).
//	        Reply()
//
//	    user, err := FetchUser(m.HTTPClient(), "123")
//	    // ...
//
//	    m.AssertCalled("GET", "https://api.example.com/users/123")
//	}
//
// # Request Matching
//
// The second argument of On is a full URL when it contains "://", and a
// path pattern (with "/*" wildcards and "{name}" segments) otherwise.
// Further criteria narrow the match:
//
//	m.On("POST", "/api/items").
//	    WithRequestHeader("Authorization", "Bearer *").
//	    WithBodyContains(`"sku":`).
//	    WithStatus(201).
//	    Reply()
//
// # Assertions
//
// Every request is journaled. LastCall returns the most recent one for
// detailed checks:
//
//	m.LastCall().AssertJSONField("$.sku", "A-1")
package mappingtest
