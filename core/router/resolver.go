package router

import "github.com/specx2/openapi-router/core/ir"

// Resolve produces the parameter map for a matched route: every
// declaration in scope, keyed by name, with its raw value sourced from the
// path captures, query, headers, or parsed body, falling back to the
// declaration's schema default when the source has nothing.
//
// Declarations come from two scopes: the route's shared set and the
// matched operation's own set. The shared set is merged first and wins on
// a name clash (the same rule deduplicates repeated names within one
// scope: first one in list order wins).
//
// Resolution is a pure function of its inputs. A ConfigurationError aborts
// the whole call; no partial map is returned.
func Resolve(m Match, req Request) (map[string]ResolvedParameter, error) {
	if m.Entry == nil {
		return map[string]ResolvedParameter{}, nil
	}

	var opParams []ir.ParameterInfo
	if m.Operation != nil {
		opParams = m.Operation.Parameters
	}
	declarations := mergeDeclarations(m.Entry.Parameters, opParams)

	params := make(map[string]ResolvedParameter, len(declarations))
	for _, decl := range declarations {
		val, err := resolveValue(decl, m, req)
		if err != nil {
			return nil, err
		}
		if val == nil {
			if def, ok := decl.Schema.Default(); ok {
				val = def
			}
		}
		params[decl.Name] = ResolvedParameter{Schema: decl, Value: val}
	}
	return params, nil
}

// mergeDeclarations unions the shared and operation-level declaration
// lists with explicit first-write-wins semantics per name.
func mergeDeclarations(shared, own []ir.ParameterInfo) []ir.ParameterInfo {
	merged := make([]ir.ParameterInfo, 0, len(shared)+len(own))
	seen := make(map[string]struct{}, len(shared)+len(own))
	for _, decl := range append(append([]ir.ParameterInfo{}, shared...), own...) {
		if _, ok := seen[decl.Name]; ok {
			continue
		}
		seen[decl.Name] = struct{}{}
		merged = append(merged, decl)
	}
	return merged
}

func resolveValue(decl ir.ParameterInfo, m Match, req Request) (interface{}, error) {
	switch ir.NormalizeIn(decl.In) {
	case ir.ParameterInPath:
		for i, name := range m.Entry.SlotNames {
			if name == decl.Name && i < len(m.Captures) {
				return m.Captures[i], nil
			}
		}
		return nil, nil

	case ir.ParameterInHeader:
		if vs := req.Header.Values(decl.Name); len(vs) > 0 {
			return vs[0], nil
		}
		return nil, nil

	case ir.ParameterInBody, ir.ParameterInFormData:
		if req.Body == nil {
			return nil, &ConfigurationError{
				Parameter: decl.Name,
				In:        decl.In,
				Reason:    "request body was not parsed before resolution",
			}
		}
		if v, ok := req.Body[decl.Name]; ok {
			return v, nil
		}
		return nil, nil

	default: // query, plus anything normalized to it
		if req.Query == nil {
			return nil, &ConfigurationError{
				Parameter: decl.Name,
				In:        decl.In,
				Reason:    "request query was not parsed before resolution",
			}
		}
		if vs, ok := req.Query[decl.Name]; ok && len(vs) > 0 {
			return vs[0], nil
		}
		return nil, nil
	}
}

// Metadata runs match and resolve in one step and assembles the per-request
// metadata record handed to downstream request handling.
func (t *Table) Metadata(path, method string, req Request) (*RequestMetadata, error) {
	m := t.Match(path, method)
	params, err := Resolve(m, req)
	if err != nil {
		return nil, err
	}
	md := &RequestMetadata{
		Params:      params,
		Description: t.description,
	}
	if m.Entry != nil {
		md.Path = m.Entry.Item
	}
	md.Operation = m.Operation
	return md, nil
}
