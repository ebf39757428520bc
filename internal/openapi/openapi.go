// Package openapi projects OpenAPI 3 documents onto documentation routes.
package openapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

const defaultTimeout = 10 * time.Second

// LoadURL fetches and validates the document at specURL.
func LoadURL(ctx context.Context, specURL string) (*openapi3.T, error) {
	client := &http.Client{Timeout: defaultTimeout}
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return nil, errors.NewLoadError("build request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewLoadError("GET "+specURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewLoadError(fmt.Sprintf("GET %s: %s", specURL, resp.Status), nil)
	}

	location, err := url.Parse(specURL)
	if err != nil {
		return nil, errors.NewLoadError("parse spec url", err)
	}
	doc, err := loader.LoadFromIoReader(resp.Body)
	if err != nil {
		return nil, errors.NewLoadError("decode "+location.Redacted(), err)
	}
	return validated(ctx, doc)
}

// LoadFile reads and validates a local document.
func LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, errors.NewLoadError("load "+path, err)
	}
	return validated(ctx, doc)
}

// LoadData parses and validates an in-memory document.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.NewLoadError("decode openapi document", err)
	}
	return validated(ctx, doc)
}

func validated(ctx context.Context, doc *openapi3.T) (*openapi3.T, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, errors.NewLoadError("invalid openapi document", err)
	}
	return doc, nil
}

// Version returns the major API version from info.version ("2.1.0" -> "2"),
// used to hide /api/v<version> prefixes.
func Version(doc *openapi3.T) string {
	if doc == nil || doc.Info == nil {
		return ""
	}
	v := strings.TrimPrefix(strings.TrimSpace(doc.Info.Version), "v")
	major, _, _ := strings.Cut(v, ".")
	return major
}

// Title returns info.title, or "".
func Title(doc *openapi3.T) string {
	if doc == nil || doc.Info == nil {
		return ""
	}
	return strings.TrimSpace(doc.Info.Title)
}

var templateParam = regexp.MustCompile(`\{([^}/]+)\}`)

// routePath rewrites OpenAPI {name} templates to :name segments.
func routePath(p string) string {
	return templateParam.ReplaceAllString(p, ":$1")
}

// ExtractRoutes returns one route per operation, ordered by path and then
// by method.
func ExtractRoutes(doc *openapi3.T) []*model.Route {
	var out []*model.Route
	if doc == nil || doc.Paths == nil {
		return out
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}

		commonParams := item.Parameters

		addOp := func(method string, op *openapi3.Operation) {
			if op == nil {
				return
			}

			r := &model.Route{
				Methods:   []string{method},
				Path:      routePath(path),
				URL:       model.Params{},
				Query:     model.Params{},
				Headers:   model.Params{},
				Body:      &model.Body{Template: model.Params{}},
				Docstring: docstring(op),
			}

			params := append(openapi3.Parameters{}, commonParams...)
			params = append(params, op.Parameters...)

			for _, p := range params {
				if p == nil || p.Value == nil {
					continue
				}
				mp := model.Param{Name: p.Value.Name, Spec: paramSpec(p.Value.Schema, p.Value.Required || p.Value.In == openapi3.ParameterInPath)}
				switch p.Value.In {
				case openapi3.ParameterInPath:
					r.URL = upsert(r.URL, mp)
				case openapi3.ParameterInQuery:
					r.Query = upsert(r.Query, mp)
				case openapi3.ParameterInHeader:
					r.Headers = upsert(r.Headers, mp)
				}
			}

			r.Body.Template = extractBody(op)

			out = append(out, r)
		}

		addOp(http.MethodGet, item.Get)
		addOp(http.MethodHead, item.Head)
		addOp(http.MethodPost, item.Post)
		addOp(http.MethodPut, item.Put)
		addOp(http.MethodPatch, item.Patch)
		addOp(http.MethodDelete, item.Delete)
		addOp(http.MethodOptions, item.Options)
		addOp(http.MethodTrace, item.Trace)
	}

	return out
}

// upsert lets operation parameters override path-level ones of the same name.
func upsert(params model.Params, p model.Param) model.Params {
	for i := range params {
		if params[i].Name == p.Name {
			params[i] = p
			return params
		}
	}
	return append(params, p)
}

func docstring(op *openapi3.Operation) string {
	var parts []string
	for _, s := range []string{op.Summary, op.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return "unknown"
	}
	for _, t := range []string{"string", "integer", "number", "boolean", "array", "object"} {
		if ref.Value.Type.Is(t) {
			return t
		}
	}
	return "unknown"
}

// paramSpec maps a schema onto a type and display attributes. The required
// flag always comes first.
func paramSpec(ref *openapi3.SchemaRef, required bool) model.ParamSpec {
	spec := model.ParamSpec{
		Type:       schemaType(ref),
		Attributes: model.Attributes{{Key: model.AttrRequired, Value: required}},
	}
	if ref == nil || ref.Value == nil {
		return spec
	}
	s := ref.Value
	add := func(key string, v any) {
		spec.Attributes = append(spec.Attributes, model.Attribute{Key: key, Value: v})
	}

	if s.Format != "" {
		add("format", s.Format)
	}
	if s.MinLength > 0 {
		add("minLength", s.MinLength)
	}
	if s.MaxLength != nil {
		add("maxLength", *s.MaxLength)
	}
	if s.Min != nil {
		add("minimum", *s.Min)
	}
	if s.Max != nil {
		add("maximum", *s.Max)
	}
	if s.Pattern != "" {
		add("pattern", s.Pattern)
	}
	if len(s.Enum) > 0 {
		add("choices", append([]any{}, s.Enum...))
	}
	if s.Default != nil {
		add("default", s.Default)
	}
	return spec
}

func extractBody(op *openapi3.Operation) model.Params {
	out := model.Params{}
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return out
	}

	mt := op.RequestBody.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return out
	}

	s := mt.Schema.Value
	if s.Type == nil || !s.Type.Is("object") {
		return out
	}

	required := map[string]bool{}
	for _, name := range s.Required {
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out = append(out, model.Param{Name: name, Spec: paramSpec(s.Properties[name], required[name])})
	}
	return out
}
