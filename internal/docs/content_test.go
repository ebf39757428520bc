package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venomdocs/internal/dom"
	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

func newTestPanel(t *testing.T) *ContentPanel {
	t.Helper()
	c, err := NewContentPanel(parseSkeleton(t), NewPathNormalizer(""), nil)
	require.NoError(t, err)
	return c
}

func TestContentPanel_ItemsScenario(t *testing.T) {
	c := newTestPanel(t)
	require.NoError(t, c.Render(itemsRoute()))

	assert.Equal(t, "GET", dom.Text(c.methodLabel))
	assert.Equal(t, `<div class="js-Path">items/<div class="UrlParameter">itemId</div></div>`, dom.String(c.pathLabel))

	secs := sections(t, c)
	require.Len(t, secs, 1)
	assert.Equal(t, "URL Parameters", sectionTitle(t, secs[0]))

	all := rows(t, secs[0])
	require.Len(t, all, 2)
	assert.Equal(t, []string{"itemId", "string", "required"}, cellTexts(all[1]))
}

func TestContentPanel_OnlyQueryParameters(t *testing.T) {
	c := newTestPanel(t)
	r := emptyRoute("/api/v1/search", "GET")
	r.Query = model.Params{param("q", "String", attrs("required", true))}

	require.NoError(t, c.Render(r))

	secs := sections(t, c)
	require.Len(t, secs, 1)
	assert.Equal(t, "Query Parameters", sectionTitle(t, secs[0]))
	_, err := dom.Find(".DocstringSection", c.params)
	assert.Error(t, err)
}

func TestContentPanel_SectionOrder(t *testing.T) {
	c := newTestPanel(t)
	r := emptyRoute("/api/v1/users/:id", "PUT")
	r.Docstring = "Replace a user."
	r.Body.Template = model.Params{param("name", "String", attrs("required", true))}
	r.Query = model.Params{param("dryRun", "Boolean", attrs("required", false))}
	r.Headers = model.Params{param("Authorization", "String", attrs("required", true))}
	r.URL = model.Params{param("id", "Integer", attrs("required", true, "min", 1))}

	require.NoError(t, c.Render(r))

	var titles []string
	for _, s := range sections(t, c) {
		titles = append(titles, sectionTitle(t, s))
	}
	assert.Equal(t, []string{"Description", "URL Parameters", "Header Parameters", "Query Parameters", "Body Parameters"}, titles)

	header := rows(t, sections(t, c)[2])[0]
	assert.Equal(t, []string{"Header", "Type", "Attributes"}, cellTexts(header))
}

func TestContentPanel_RenderIsIdempotent(t *testing.T) {
	c := newTestPanel(t)
	r := itemsRoute()
	r.Docstring = "Fetch one item."

	require.NoError(t, c.Render(r))
	first := dom.String(c.Element())
	require.NoError(t, c.Render(r))

	assert.Equal(t, first, dom.String(c.Element()))
	assert.Len(t, sections(t, c), 2)
}

func TestContentPanel_RenderReplacesPreviousRoute(t *testing.T) {
	c := newTestPanel(t)
	require.NoError(t, c.Render(itemsRoute()))

	other := emptyRoute("/api/v1/health", "HEAD")
	require.NoError(t, c.Render(other))

	assert.Equal(t, "HEAD", dom.Text(c.methodLabel))
	assert.Equal(t, "health", dom.Text(c.pathLabel))
	assert.Empty(t, sections(t, c))
	assert.Same(t, other, c.Route())
}

func TestContentPanel_MissingFieldKeepsPreviousContent(t *testing.T) {
	tests := []struct {
		name  string
		field string
		route func() *model.Route
	}{
		{"no methods", "methods", func() *model.Route { r := itemsRoute(); r.Methods = nil; return r }},
		{"no path", "path", func() *model.Route { r := itemsRoute(); r.Path = ""; return r }},
		{"no url", "url", func() *model.Route { r := itemsRoute(); r.URL = nil; return r }},
		{"no headers", "headers", func() *model.Route { r := itemsRoute(); r.Headers = nil; return r }},
		{"no query", "query", func() *model.Route { r := itemsRoute(); r.Query = nil; return r }},
		{"no body", "body", func() *model.Route { r := itemsRoute(); r.Body = nil; return r }},
		{"no body template", "body.template", func() *model.Route { r := itemsRoute(); r.Body.Template = nil; return r }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestPanel(t)
			good := itemsRoute()
			require.NoError(t, c.Render(good))
			before := dom.String(c.Element())

			err := c.Render(tt.route())
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeMissingField))
			assert.Contains(t, err.Error(), `"`+tt.field+`"`)
			assert.Equal(t, before, dom.String(c.Element()))
			assert.Same(t, good, c.Route())
		})
	}
}

func TestContentPanel_NilRoute(t *testing.T) {
	c := newTestPanel(t)
	err := c.Render(nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
}

func TestNewContentPanel_MissingMarkup(t *testing.T) {
	doc, err := dom.Parse(stringsReader(`<html><body><main class="js-DocContent"></main></body></html>`))
	require.NoError(t, err)

	_, err = NewContentPanel(doc, NewPathNormalizer(""), nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfig))
}
