package router

import (
	"strings"

	"github.com/specx2/openapi-router/core/ir"
)

// Match is the outcome of matching one request path and method against a
// table. A nil Entry means no route matched. A non-nil Entry with a nil
// Operation means the path is declared but the method is not; neither case
// is an error, the caller decides how to respond.
type Match struct {
	Entry     *Entry
	Operation *ir.Operation
	Captures  []string
}

// Matched reports whether any route matched.
func (m Match) Matched() bool {
	return m.Entry != nil
}

// Match finds the first route, in declaration order, whose pattern matches
// the request path, and that route's operation for the request method
// (case-insensitive). No attempt is made to find a more specific match
// among structurally overlapping templates; first declared wins.
//
// path must be the request's path component only, with query string and
// fragment already stripped by the caller.
func (t *Table) Match(path, method string) Match {
	for _, entry := range t.entries {
		groups := entry.Pattern.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		return Match{
			Entry:     entry,
			Operation: entry.Operations[strings.ToLower(method)],
			Captures:  groups[1:],
		}
	}
	return Match{}
}
