package router

import (
	"net/http"
	"net/url"

	"github.com/specx2/openapi-router/core/ir"
)

// Request carries the pre-parsed pieces of an incoming request that
// parameter resolution reads from. The hosting pipeline is responsible for
// populating them before resolution runs: a nil Query or Body means the
// corresponding parsing collaborator never ran, which is a configuration
// error if any declaration needs that source.
type Request struct {
	Query  url.Values
	Header http.Header
	Body   map[string]interface{}
}

// ResolvedParameter is one resolved declaration: the declaration itself and
// the raw value extracted for it. The value is never coerced; it keeps
// whatever shape the upstream collaborator produced (a string for path,
// query and header sources, arbitrary decoded JSON for body sources).
type ResolvedParameter struct {
	Schema ir.ParameterInfo
	Value  interface{}
}

// RequestMetadata is the per-request data product of the core: the matched
// path item and operation (either may be nil), the resolved parameters, and
// the description the table was built from. It is created fresh for each
// request and owned by that request's pipeline; the description reference
// is shared and read-only.
type RequestMetadata struct {
	Path        *ir.PathItem
	Operation   *ir.Operation
	Params      map[string]ResolvedParameter
	Description *ir.Description
}
