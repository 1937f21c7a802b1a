// Package mapping intercepts outgoing HTTP requests and answers them from
// registered request-to-response mappings instead of the network.
//
// # Scopes
//
// Mappings live in two scopes. Every Transport (and the Client wrapping
// it) owns a local table, created empty. Every Transport also reads the
// global table of its Registry; unless told otherwise that is the
// process-wide DefaultRegistry(). A request is resolved against the live
// local entries first and the live global entries second, each in
// insertion order, and the first matching entry answers it. A request
// nothing matches gets NotFound: a 404 with an empty body.
//
//	registry := mapping.NewRegistry()
//	registry.Map("http://zzz.example", mapping.Status(400))
//
//	client := mapping.NewClient(mapping.WithRegistry(registry))
//	idx, _ := client.Map("http://zzz.example", mapping.Status(403))
//
//	client.Get("http://zzz.example") // 403 from the local table
//	client.Unmap(idx)
//	client.Get("http://zzz.example") // 400 from the global table
//
// # Descriptors
//
// Map takes a request descriptor and a response descriptor. A string
// matches the exact URL, a *regexp.Regexp searches the URL, a function
// tests the request, and an *http.Request must be structurally equal.
// A response is an *http.Response (replayed on every match), a function
// of the request, or a Resolver such as Static or Passthrough. Other
// types are rejected when the mapping is registered.
//
// # Indices
//
// Map returns the slot index of the new mapping. Unmap tombstones that
// slot without renumbering the others. UnmapAll empties the scope and
// numbering starts again at zero, so an index kept from before UnmapAll
// may later name an unrelated mapping.
//
// # Passthrough
//
// MapPassthrough registers a matcher whose requests go to the real
// transport captured when the Transport was built. The default real
// transport also serves file:// URLs, so local fixtures can be read while
// everything else stays intercepted.
package mapping
