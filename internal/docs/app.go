// Package docs implements the API documentation viewer: a sidebar of routes
// with a single active selection, a content panel showing the active route's
// parameters, and a search filter over the sidebar.
package docs

import (
	_ "embed"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
	xhtml "golang.org/x/net/html"

	"venomdocs/internal/dom"
	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

//go:embed assets/page.html
var pageTemplate string

const defaultTitle = "API Documentation"

type Options struct {
	Title string
	// Version selects the /api/v<version> prefix stripped from displayed
	// paths; empty strips any version.
	Version string
	// RouteLink, when set, turns sidebar entries into anchors.
	RouteLink func(guid string) string
	Logger    *zap.SugaredLogger
}

// App owns one document view and its components. It is not safe for
// concurrent use; confine each App to a single goroutine.
type App struct {
	doc   *xhtml.Node
	input *xhtml.Node

	Content *ContentPanel
	Routes  *RouteList
	Search  *SearchFilter[*RouteItem]

	log *zap.SugaredLogger
}

// NewApp builds the page skeleton, binds the components to it and adds one
// sidebar entry per route. No route is active yet.
func NewApp(routes []*model.Route, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = defaultTitle
	}

	page := fasttemplate.ExecuteString(pageTemplate, "{{", "}}", map[string]interface{}{
		"title":   html.EscapeString(title),
		"version": html.EscapeString(opts.Version),
	})
	doc, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	paths := NewPathNormalizer(opts.Version)
	content, err := NewContentPanel(doc, paths, log)
	if err != nil {
		return nil, err
	}
	list, err := NewRouteList(doc, content, paths, log)
	if err != nil {
		return nil, err
	}
	list.SetLink(opts.RouteLink)
	for i, r := range routes {
		if _, err := list.Add(r); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
	}

	input, err := dom.Find(".js-Search", doc)
	if err != nil {
		return nil, errors.NewConfigError("bind search input", err)
	}

	a := &App{doc: doc, input: input, Content: content, Routes: list, log: log}
	a.Search = NewSearchFilter[*RouteItem]()
	a.Search.SetGetter(list.All)
	a.Search.SetFilter(RouteMatcher())
	a.Search.Bind(a)

	log.Debugw("document built", "routes", list.Len(), "version", opts.Version)
	return a, nil
}

// Value returns the current text of the search input.
func (a *App) Value() string {
	v, _ := dom.Attr(a.input, "value")
	return v
}

// Type sets the search input text and delivers the key events that follow
// typing it.
func (a *App) Type(text string) {
	dom.SetAttr(a.input, "value", text)
	a.Search.HandleKeyPress()
	a.Search.HandleKeyUp()
}

// Select activates the route with guid.
func (a *App) Select(guid string) error {
	item, ok := a.Routes.Lookup(guid)
	if !ok {
		return errors.NotFound("no route with guid %s", guid)
	}
	return a.Routes.Activate(item)
}

// SelectFirst activates the first sidebar entry, if any.
func (a *App) SelectFirst() error {
	items := a.Routes.Items()
	if len(items) == 0 {
		return nil
	}
	return a.Routes.Activate(items[0])
}

func (a *App) Document() *xhtml.Node {
	return a.doc
}

func (a *App) Render(w io.Writer) error {
	return dom.Render(w, a.doc)
}
