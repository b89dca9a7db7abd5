// Package router resolves incoming HTTP requests against an API
// description: it compiles the description's path templates into matchable
// patterns, finds the route and operation that apply to a request, and
// extracts the value of every declared parameter from the correct part of
// the request.
//
// A Table is built once per description and is immutable afterwards, so any
// number of concurrent requests may match against it without
// synchronization. Matching walks the routes in the order the description
// declares them; the first pattern that matches wins. Parameter resolution
// merges path-level and operation-level declarations (path-level wins on a
// name clash) and sources each value from the path captures, the parsed
// query, the request headers, or the parsed body, falling back to the
// declaration's schema default when the source has nothing.
package router
