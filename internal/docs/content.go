package docs

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"venomdocs/internal/dom"
	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

// ContentPanel is the detail pane: a header with the route's primary method
// and display path, followed by the docstring and parameter sections.
type ContentPanel struct {
	content     *html.Node
	methodLabel *html.Node
	pathLabel   *html.Node
	params      *html.Node

	paths *PathNormalizer
	log   *zap.SugaredLogger

	route *model.Route
}

// NewContentPanel binds to the .js-DocContent markup inside scope.
func NewContentPanel(scope *html.Node, paths *PathNormalizer, log *zap.SugaredLogger) (*ContentPanel, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	content, err := dom.Find(".js-DocContent", scope)
	if err != nil {
		return nil, errors.NewConfigError("bind content panel", err)
	}
	c := &ContentPanel{content: content, paths: paths, log: log}
	for sel, dst := range map[string]**html.Node{
		".js-Method":     &c.methodLabel,
		".js-Path":       &c.pathLabel,
		".js-Parameters": &c.params,
	} {
		n, err := dom.Find(sel, content)
		if err != nil {
			return nil, errors.NewConfigError("bind content panel", err)
		}
		*dst = n
	}
	return c, nil
}

// Render replaces the panel contents with route. The route is checked before
// any markup changes, so a failed render keeps the previous content.
func (c *ContentPanel) Render(route *model.Route) error {
	if err := checkRoute(route); err != nil {
		c.log.Debugw("route not rendered", "error", err)
		return err
	}
	c.renderHeader(route)
	c.renderParameters(route)
	c.route = route
	return nil
}

// Route returns the last successfully rendered route.
func (c *ContentPanel) Route() *model.Route {
	return c.route
}

func (c *ContentPanel) Element() *html.Node {
	return c.content
}

// renderHeader shows only the primary method; other methods of the route are
// not displayed.
func (c *ContentPanel) renderHeader(route *model.Route) {
	dom.SetText(c.methodLabel, route.Methods[0])
	c.paths.render(c.pathLabel, route.Path)
}

func (c *ContentPanel) renderParameters(route *model.Route) {
	dom.Clear(c.params)
	renderDocstring(c.params, route.Docstring)
	for _, g := range parameterGroups {
		renderParameterDict(c.params, g.params(route), g.title, g.columns)
	}
}

func checkRoute(route *model.Route) error {
	switch {
	case route == nil:
		return errors.InvalidArgument("nil route")
	case len(route.Methods) == 0:
		return errors.MissingField("methods")
	case route.Path == "":
		return errors.MissingField("path")
	case route.URL == nil:
		return errors.MissingField("url")
	case route.Headers == nil:
		return errors.MissingField("headers")
	case route.Query == nil:
		return errors.MissingField("query")
	case route.Body == nil:
		return errors.MissingField("body")
	case route.Body.Template == nil:
		return errors.MissingField("body.template")
	}
	return nil
}
