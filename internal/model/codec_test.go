package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const routeJSON = `{
  "methods": ["GET", "HEAD"],
  "path": "/api/v1/items/:itemId",
  "url": {"itemId": {"type": "String", "attributes": {"required": true, "max": 64, "min": 1}}},
  "query": {"zeta": {"type": "Integer", "attributes": {"required": false}}, "alpha": {"type": "String", "attributes": {}}},
  "headers": {},
  "body": {"template": {}},
  "docstring": null
}`

func TestRoute_UnmarshalJSONKeepsOrder(t *testing.T) {
	var r Route
	require.NoError(t, json.Unmarshal([]byte(routeJSON), &r))

	assert.Equal(t, []string{"GET", "HEAD"}, r.Methods)
	assert.Equal(t, "", r.Docstring)

	require.Len(t, r.URL, 1)
	attrs := r.URL[0].Spec.Attributes
	require.Len(t, attrs, 3)
	assert.Equal(t, []string{"required", "max", "min"}, []string{attrs[0].Key, attrs[1].Key, attrs[2].Key})
	assert.Equal(t, true, attrs[0].Value)
	assert.Equal(t, json.Number("64"), attrs[1].Value)

	require.Len(t, r.Query, 2)
	assert.Equal(t, "zeta", r.Query[0].Name)
	assert.Equal(t, "alpha", r.Query[1].Name)

	assert.NotNil(t, r.Headers)
	assert.Empty(t, r.Headers)
	require.NotNil(t, r.Body)
	assert.NotNil(t, r.Body.Template)
}

func TestRoute_AbsentGroupsStayNil(t *testing.T) {
	var r Route
	require.NoError(t, json.Unmarshal([]byte(`{"methods":["GET"],"path":"/x"}`), &r))

	assert.Nil(t, r.URL)
	assert.Nil(t, r.Query)
	assert.Nil(t, r.Headers)
	assert.Nil(t, r.Body)
}

func TestAttributes_NullValuesKept(t *testing.T) {
	var a Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"required": true, "default": null, "pattern": "^a"}`), &a))
	require.Len(t, a, 3)
	assert.Equal(t, "default", a[1].Key)
	assert.Nil(t, a[1].Value)
	assert.Equal(t, "pattern", a[2].Key)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"required":true,"default":null,"pattern":"^a"}`, string(data))

	var y Attributes
	require.NoError(t, yaml.Unmarshal([]byte("{required: false, default: null, max: 3}"), &y))
	require.Len(t, y, 3)
	assert.Equal(t, "default", y[1].Key)
	assert.Nil(t, y[1].Value)
}

func TestParams_MarshalJSONRoundTripOrder(t *testing.T) {
	p := Params{
		{Name: "b", Spec: ParamSpec{Type: "String", Attributes: Attributes{{Key: "required", Value: true}}}},
		{Name: "a", Spec: ParamSpec{Type: "Integer", Attributes: Attributes{}}},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":{"type":"String","attributes":{"required":true}},"a":{"type":"Integer","attributes":{}}}`, string(data))
	assert.Equal(t, `{"b":`, string(data[:5]))

	var nilParams Params
	data, err = json.Marshal(nilParams)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRoute_UnmarshalYAMLKeepsOrder(t *testing.T) {
	src := `
methods: [POST]
path: /api/v1/users
headers:
  Authorization: {type: String, attributes: {required: true}}
body:
  template:
    name: {type: String, attributes: {required: true, max: 32}}
    email: {type: String, attributes: {pattern: ".+@.+"}}
docstring: Create a user.
`
	var r Route
	require.NoError(t, yaml.Unmarshal([]byte(src), &r))

	assert.Equal(t, "Create a user.", r.Docstring)
	assert.Nil(t, r.URL)
	require.Len(t, r.Headers, 1)
	require.NotNil(t, r.Body)
	require.Len(t, r.Body.Template, 2)
	assert.Equal(t, "name", r.Body.Template[0].Name)
	assert.Equal(t, "email", r.Body.Template[1].Name)

	attrs := r.Body.Template[0].Spec.Attributes
	require.Len(t, attrs, 2)
	assert.Equal(t, "max", attrs[1].Key)
	assert.Equal(t, 32, attrs[1].Value)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bool", true, "true"},
		{"string", "abc", "abc"},
		{"json number", json.Number("10"), "10"},
		{"float", 2.5, "2.5"},
		{"integral float", float64(10), "10"},
		{"int", 7, "7"},
		{"list", []any{"a", "b", json.Number("3")}, "a|b|3"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestRoute_GUIDStable(t *testing.T) {
	a := &Route{Methods: []string{"GET"}, Path: "/api/v1/items"}
	b := &Route{Methods: []string{"get"}, Path: "/api/v1/items"}
	c := &Route{Methods: []string{"POST"}, Path: "/api/v1/items"}

	assert.Equal(t, a.GUID(), b.GUID())
	assert.NotEqual(t, a.GUID(), c.GUID())
	assert.Len(t, a.GUID(), 36)
}

func TestRoute_PrimaryMethod(t *testing.T) {
	assert.Equal(t, "GET", (&Route{Methods: []string{"GET", "HEAD"}}).PrimaryMethod())
	assert.Equal(t, "", (&Route{}).PrimaryMethod())

	var nilRoute *Route
	assert.Equal(t, "", nilRoute.PrimaryMethod())
}
