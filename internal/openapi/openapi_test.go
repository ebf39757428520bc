package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pet Store
  version: 2.1.0
paths:
  /api/v2/pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
          format: int64
          minimum: 1
    get:
      summary: Fetch a pet
      description: Returns a single pet.
      parameters:
        - name: X-Trace
          in: header
          schema:
            type: string
      responses:
        "200":
          description: ok
    delete:
      responses:
        "204":
          description: gone
  /api/v2/pets:
    post:
      summary: Create a pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  minLength: 1
                  maxLength: 64
                kind:
                  type: string
                  enum: [cat, dog]
                  default: cat
      responses:
        "201":
          description: created
    get:
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            maximum: 100
      responses:
        "200":
          description: ok
`

func load(t *testing.T) []*model.Route {
	t.Helper()
	doc, err := LoadData(context.Background(), []byte(petstore))
	require.NoError(t, err)
	return ExtractRoutes(doc)
}

func TestExtractRoutes_Order(t *testing.T) {
	routes := load(t)
	require.Len(t, routes, 4)

	var got []string
	for _, r := range routes {
		got = append(got, r.PrimaryMethod()+" "+r.Path)
	}
	assert.Equal(t, []string{
		"GET /api/v2/pets",
		"POST /api/v2/pets",
		"GET /api/v2/pets/:petId",
		"DELETE /api/v2/pets/:petId",
	}, got)
}

func TestExtractRoutes_GroupsAlwaysPresent(t *testing.T) {
	for _, r := range load(t) {
		assert.NotNil(t, r.URL, r.Path)
		assert.NotNil(t, r.Query, r.Path)
		assert.NotNil(t, r.Headers, r.Path)
		require.NotNil(t, r.Body, r.Path)
		assert.NotNil(t, r.Body.Template, r.Path)
	}
}

func TestExtractRoutes_Parameters(t *testing.T) {
	routes := load(t)
	get := routes[2]

	require.Len(t, get.URL, 1)
	pet := get.URL[0]
	assert.Equal(t, "petId", pet.Name)
	assert.Equal(t, "integer", pet.Spec.Type)

	var keys []string
	for _, a := range pet.Spec.Attributes {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"required", "format", "minimum"}, keys)
	v, ok := pet.Spec.Attributes.Get("required")
	require.True(t, ok)
	assert.Equal(t, true, v)

	require.Len(t, get.Headers, 1)
	assert.Equal(t, "X-Trace", get.Headers[0].Name)
	req, _ := get.Headers[0].Spec.Attributes.Get("required")
	assert.Equal(t, false, req)

	assert.Equal(t, "Fetch a pet\n\nReturns a single pet.", get.Docstring)

	// path-level parameters are inherited by every operation
	assert.Len(t, routes[3].URL, 1)
	assert.Empty(t, routes[3].Docstring)

	list := routes[0]
	require.Len(t, list.Query, 1)
	maxV, ok := list.Query[0].Spec.Attributes.Get("maximum")
	require.True(t, ok)
	assert.Equal(t, "100", model.FormatValue(maxV))
}

func TestExtractRoutes_Body(t *testing.T) {
	post := load(t)[1]
	tmpl := post.Body.Template
	require.Len(t, tmpl, 2)

	kind := tmpl[0]
	assert.Equal(t, "kind", kind.Name)
	choices, ok := kind.Spec.Attributes.Get("choices")
	require.True(t, ok)
	assert.Equal(t, "cat|dog", model.FormatValue(choices))
	def, _ := kind.Spec.Attributes.Get("default")
	assert.Equal(t, "cat", def)

	name := tmpl[1]
	assert.Equal(t, "name", name.Name)
	req, _ := name.Spec.Attributes.Get("required")
	assert.Equal(t, true, req)
	minLen, _ := name.Spec.Attributes.Get("minLength")
	assert.Equal(t, "1", model.FormatValue(minLen))
	maxLen, _ := name.Spec.Attributes.Get("maxLength")
	assert.Equal(t, "64", model.FormatValue(maxLen))
}

func TestExtractRoutes_Nil(t *testing.T) {
	assert.Empty(t, ExtractRoutes(nil))
}

func TestRoutePath(t *testing.T) {
	assert.Equal(t, "/a/:id/b/:sub", routePath("/a/{id}/b/{sub}"))
	assert.Equal(t, "/plain", routePath("/plain"))
}

func TestVersionAndTitle(t *testing.T) {
	doc, err := LoadData(context.Background(), []byte(petstore))
	require.NoError(t, err)
	assert.Equal(t, "2", Version(doc))
	assert.Equal(t, "Pet Store", Title(doc))
	assert.Empty(t, Version(nil))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o600))

	doc, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, ExtractRoutes(doc), 4)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeLoad))
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(petstore))
	}))
	defer srv.Close()

	doc, err := LoadURL(context.Background(), srv.URL+"/openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Pet Store", Title(doc))

	_, err = LoadURL(context.Background(), srv.URL+"/nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeLoad))
}

func TestLoadData_Invalid(t *testing.T) {
	_, err := LoadData(context.Background(), []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeLoad))
}
