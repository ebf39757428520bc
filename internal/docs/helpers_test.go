package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"venomdocs/internal/dom"
	"venomdocs/internal/model"
)

const skeleton = `<html><body>
<nav class="js-RouteList"></nav>
<main class="js-DocContent"><div class="js-Method"></div><div class="js-Path"></div><div class="js-Parameters"></div></main>
</body></html>`

func parseSkeleton(t *testing.T) *html.Node {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(skeleton))
	require.NoError(t, err)
	return doc
}

func attrs(kv ...any) model.Attributes {
	out := model.Attributes{}
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, model.Attribute{Key: kv[i].(string), Value: kv[i+1]})
	}
	return out
}

func param(name, typ string, a model.Attributes) model.Param {
	return model.Param{Name: name, Spec: model.ParamSpec{Type: typ, Attributes: a}}
}

// emptyRoute has every group present and empty.
func emptyRoute(path string, methods ...string) *model.Route {
	return &model.Route{
		Methods: methods,
		Path:    path,
		URL:     model.Params{},
		Query:   model.Params{},
		Headers: model.Params{},
		Body:    &model.Body{Template: model.Params{}},
	}
}

func itemsRoute() *model.Route {
	r := emptyRoute("/api/v1/items/:itemId", "GET", "HEAD")
	r.URL = model.Params{param("itemId", "string", attrs("required", true))}
	return r
}

func sections(t *testing.T, c *ContentPanel) []*html.Node {
	t.Helper()
	return dom.Children(c.params)
}

func sectionTitle(t *testing.T, section *html.Node) string {
	t.Helper()
	title, err := dom.Find("h3", section)
	require.NoError(t, err)
	return dom.Text(title)
}

func rows(t *testing.T, section *html.Node) []*html.Node {
	t.Helper()
	out, err := dom.FindAll(".ParameterTable-Row", section)
	require.NoError(t, err)
	return out
}

func cellTexts(row *html.Node) []string {
	var out []string
	for _, cell := range dom.Children(row) {
		out = append(out, dom.Text(cell))
	}
	return out
}

type recordingRenderer struct {
	routes []*model.Route
	check  func(route *model.Route)
	err    error
}

func (r *recordingRenderer) Render(route *model.Route) error {
	if r.check != nil {
		r.check(route)
	}
	r.routes = append(r.routes, route)
	return r.err
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
