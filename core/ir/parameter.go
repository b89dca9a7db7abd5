package ir

type ParameterInfo struct {
	Name        string
	In          string
	Required    bool
	Schema      Schema
	Description string
	Extensions  map[string]interface{}
}

const (
	ParameterInPath     = "path"
	ParameterInQuery    = "query"
	ParameterInHeader   = "header"
	ParameterInBody     = "body"
	ParameterInFormData = "formData"
)

// NormalizeIn maps an empty or unrecognized location tag to the query
// location. The description format treats query as the implicit default,
// and normalizing once at load time keeps per-request resolution free of
// repeated branching on malformed tags.
func NormalizeIn(in string) string {
	switch in {
	case ParameterInPath, ParameterInQuery, ParameterInHeader, ParameterInBody, ParameterInFormData:
		return in
	default:
		return ParameterInQuery
	}
}
