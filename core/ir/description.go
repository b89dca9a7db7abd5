package ir

// Description is the in-memory form of an API description document. It is
// built once by a loader (or assembled directly in tests) and treated as
// immutable afterwards; the routing core only ever reads it.
type Description struct {
	BasePath   string
	Paths      []PathEntry
	Title      string
	Version    string
	Host       string
	Extensions map[string]interface{}
}

// PathEntry pairs a path template with its path item. Descriptions keep
// their paths in an explicit slice so that route construction sees the
// document's declaration order rather than map iteration order.
type PathEntry struct {
	Template string
	Item     *PathItem
}

// PathItem holds everything declared for one path template: parameter
// declarations shared by all of its operations, and the operation declared
// for each HTTP method, keyed by lowercase method name.
type PathItem struct {
	Parameters []ParameterInfo
	Operations map[string]*Operation
	Extensions map[string]interface{}
}

// Operation is the per-method definition from the description. Fields the
// routing core does not interpret are carried opaquely for downstream
// consumers.
type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Parameters  []ParameterInfo
	Consumes    []string
	Produces    []string
	Extensions  map[string]interface{}
}
