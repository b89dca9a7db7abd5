package router

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specx2/openapi-router/core/ir"
)

func emptyRequest() Request {
	return Request{Query: url.Values{}, Header: http.Header{}, Body: map[string]interface{}{}}
}

func TestResolvePetstoreExample(t *testing.T) {
	t.Parallel()

	table, err := Build(petstoreDescription())
	require.NoError(t, err)

	m := table.Match("/v1/pets/42", "GET")
	require.True(t, m.Matched())

	params, err := Resolve(m, emptyRequest())
	require.NoError(t, err)

	require.Contains(t, params, "petId")
	assert.Equal(t, "42", params["petId"].Value)
	assert.Equal(t, ir.ParameterInPath, params["petId"].Schema.In)
}

func TestResolveQueryAndDefault(t *testing.T) {
	t.Parallel()

	table, err := Build(petstoreDescription())
	require.NoError(t, err)

	m := table.Match("/v1/pets", "GET")
	require.True(t, m.Matched())

	req := emptyRequest()
	req.Query = url.Values{"limit": []string{"5"}}
	params, err := Resolve(m, req)
	require.NoError(t, err)
	assert.Equal(t, "5", params["limit"].Value)

	// Absent from the query: the schema default applies.
	params, err = Resolve(m, emptyRequest())
	require.NoError(t, err)
	assert.Equal(t, "20", params["limit"].Value)
}

func TestResolveLocations(t *testing.T) {
	t.Parallel()

	entry := func(decl ir.ParameterInfo) Match {
		return Match{
			Entry: &Entry{
				SlotNames:  []string{"petId"},
				Parameters: []ir.ParameterInfo{decl},
			},
			Captures: []string{"42"},
		}
	}

	tests := []struct {
		name  string
		decl  ir.ParameterInfo
		req   Request
		value interface{}
	}{
		{
			name:  "path slot by declaration name",
			decl:  ir.ParameterInfo{Name: "petId", In: ir.ParameterInPath},
			req:   emptyRequest(),
			value: "42",
		},
		{
			name:  "path declaration without matching slot stays unresolved",
			decl:  ir.ParameterInfo{Name: "ownerId", In: ir.ParameterInPath},
			req:   emptyRequest(),
			value: nil,
		},
		{
			name: "header is case-insensitive",
			decl: ir.ParameterInfo{Name: "X-Request-Id", In: ir.ParameterInHeader},
			req: Request{
				Query:  url.Values{},
				Header: http.Header{"X-Request-Id": []string{"abc"}},
			},
			value: "abc",
		},
		{
			name: "body value keeps its parsed shape",
			decl: ir.ParameterInfo{Name: "pet", In: ir.ParameterInBody},
			req: Request{
				Query:  url.Values{},
				Header: http.Header{},
				Body:   map[string]interface{}{"pet": map[string]interface{}{"name": "rex"}},
			},
			value: map[string]interface{}{"name": "rex"},
		},
		{
			name: "formData reads the parsed body",
			decl: ir.ParameterInfo{Name: "name", In: ir.ParameterInFormData},
			req: Request{
				Query:  url.Values{},
				Header: http.Header{},
				Body:   map[string]interface{}{"name": "rex"},
			},
			value: "rex",
		},
		{
			name: "missing in tag defaults to query semantics",
			decl: ir.ParameterInfo{Name: "page"},
			req: Request{
				Query:  url.Values{"page": []string{"3"}},
				Header: http.Header{},
			},
			value: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			params, err := Resolve(entry(tt.decl), tt.req)
			require.NoError(t, err)
			require.Contains(t, params, tt.decl.Name)
			assert.Equal(t, tt.value, params[tt.decl.Name].Value)
		})
	}
}

func TestResolveSharedDeclarationWinsOverOperation(t *testing.T) {
	t.Parallel()

	m := Match{
		Entry: &Entry{
			SlotNames: []string{"id"},
			Parameters: []ir.ParameterInfo{
				{Name: "id", In: ir.ParameterInPath, Schema: ir.Schema{"type": "string"}},
			},
			Operations: map[string]*ir.Operation{},
		},
		Operation: &ir.Operation{
			Parameters: []ir.ParameterInfo{
				{Name: "id", In: ir.ParameterInQuery, Schema: ir.Schema{"type": "integer"}},
			},
		},
		Captures: []string{"42"},
	}

	req := emptyRequest()
	req.Query = url.Values{"id": []string{"999"}}

	params, err := Resolve(m, req)
	require.NoError(t, err)
	require.Contains(t, params, "id")
	assert.Equal(t, "42", params["id"].Value)
	assert.Equal(t, ir.ParameterInPath, params["id"].Schema.In)
	assert.Equal(t, ir.Schema{"type": "string"}, params["id"].Schema.Schema)
}

func TestResolveDuplicateNamesWithinOneScope(t *testing.T) {
	t.Parallel()

	m := Match{
		Entry: &Entry{},
		Operation: &ir.Operation{
			Parameters: []ir.ParameterInfo{
				{Name: "id", In: ir.ParameterInQuery, Schema: ir.Schema{"default": "first"}},
				{Name: "id", In: ir.ParameterInHeader, Schema: ir.Schema{"default": "second"}},
			},
		},
	}

	params, err := Resolve(m, emptyRequest())
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "first", params["id"].Value)
	assert.Equal(t, ir.ParameterInQuery, params["id"].Schema.In)
}

func TestResolveMissingSourceData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		decl ir.ParameterInfo
		req  Request
	}{
		{
			name: "body declaration with unparsed body",
			decl: ir.ParameterInfo{Name: "pet", In: ir.ParameterInBody},
			req:  Request{Query: url.Values{}, Header: http.Header{}},
		},
		{
			name: "formData declaration with unparsed body",
			decl: ir.ParameterInfo{Name: "name", In: ir.ParameterInFormData},
			req:  Request{Query: url.Values{}, Header: http.Header{}},
		},
		{
			name: "query declaration with unparsed query",
			decl: ir.ParameterInfo{Name: "limit", In: ir.ParameterInQuery},
			req:  Request{Header: http.Header{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := Match{Entry: &Entry{Parameters: []ir.ParameterInfo{tt.decl}}}
			params, err := Resolve(m, tt.req)

			var cerr *ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.decl.Name, cerr.Parameter)
			assert.Nil(t, params)
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	table, err := Build(petstoreDescription())
	require.NoError(t, err)

	m := table.Match("/v1/pets/42", "GET")
	req := emptyRequest()

	first, err := Resolve(m, req)
	require.NoError(t, err)
	second, err := Resolve(m, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveUnmatchedRoute(t *testing.T) {
	t.Parallel()

	params, err := Resolve(Match{}, Request{})
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestTableMetadata(t *testing.T) {
	t.Parallel()

	table, err := Build(petstoreDescription())
	require.NoError(t, err)

	md, err := table.Metadata("/v1/pets/42", "GET", emptyRequest())
	require.NoError(t, err)
	require.NotNil(t, md.Path)
	require.NotNil(t, md.Operation)
	assert.Equal(t, "getPet", md.Operation.OperationID)
	assert.Equal(t, "42", md.Params["petId"].Value)
	assert.Same(t, table.Description(), md.Description)

	md, err = table.Metadata("/unknown", "GET", emptyRequest())
	require.NoError(t, err)
	assert.Nil(t, md.Path)
	assert.Nil(t, md.Operation)
	assert.Empty(t, md.Params)
}
