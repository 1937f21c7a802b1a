// Package matching holds the request-inspection primitives behind the
// predicate builders of package mapping.
//
// Every function here answers a yes/no question about one aspect of an
// outgoing request:
//
//   - Method: case-insensitive comparison
//   - Path: exact paths, "/*" wildcards and "{name}" segments
//   - Glob: doublestar patterns such as "/files/**/*.json"
//   - Header: exact values and "*" prefix/suffix/contains patterns
//   - Query: key/value comparison
//   - Body: substring and regular expression checks
//   - JSONPath: value and existence checks against a JSON body
//   - Expr: boolean expr-lang expressions over a request environment
//
// Patterns that need compiling are compiled once, by the caller, so that
// evaluation never fails on a malformed pattern.
package matching
