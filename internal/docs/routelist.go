package docs

import (
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"venomdocs/internal/dom"
	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

const (
	classActive = "is-active"
	classHidden = "is-hidden"
)

// Renderer receives the route of the newly activated item.
type Renderer interface {
	Render(route *model.Route) error
}

// RouteItem is one selectable sidebar entry.
type RouteItem struct {
	list  *RouteList
	route *model.Route
	guid  string

	elem        *html.Node
	pathLabel   *html.Node
	methodLabel *html.Node

	active bool
}

func newRouteItem(list *RouteList, route *model.Route, path, method string) *RouteItem {
	item := &RouteItem{list: list, route: route, guid: route.GUID()}

	item.elem = dom.New("a.Route", nil, "")
	dom.SetAttr(item.elem, "data-guid", item.guid)
	if list.link != nil {
		dom.SetAttr(item.elem, "href", list.link(item.guid))
	}
	item.pathLabel = dom.New("div.Route-Path", item.elem, "")
	list.paths.render(item.pathLabel, path)
	item.methodLabel = dom.New("div.Route-Method", item.elem, method)
	return item
}

// Click reports a click on the item to its list.
func (i *RouteItem) Click() error {
	return i.list.triggerActivateRoute(i)
}

// Activate and Deactivate only toggle the item's own active marker.
func (i *RouteItem) Activate() {
	i.active = true
	dom.AddClass(classActive, i.elem)
}

func (i *RouteItem) Deactivate() {
	i.active = false
	dom.RemoveClass(classActive, i.elem)
}

func (i *RouteItem) Active() bool { return i.active }
func (i *RouteItem) Route() *model.Route { return i.route }
func (i *RouteItem) GUID() string { return i.guid }
func (i *RouteItem) Element() *html.Node { return i.elem }
func (i *RouteItem) Method() string { return dom.Text(i.methodLabel) }
func (i *RouteItem) Hidden() bool { return dom.HasClass(i.elem, classHidden) }
func (i *RouteItem) PathSegments() []PathSegment { return i.list.paths.Split(i.route.Path) }

// RouteList owns the sidebar entries and the single active selection.
type RouteList struct {
	elem    *html.Node
	items   []*RouteItem
	active  *RouteItem
	content Renderer
	paths   *PathNormalizer
	link    func(guid string) string
	log     *zap.SugaredLogger
}

// NewRouteList binds to the .js-RouteList markup inside scope. Activated
// routes are pushed into content.
func NewRouteList(scope *html.Node, content Renderer, paths *PathNormalizer, log *zap.SugaredLogger) (*RouteList, error) {
	if content == nil {
		return nil, errors.InvalidArgument("route list needs a content renderer")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	elem, err := dom.Find(".js-RouteList", scope)
	if err != nil {
		return nil, errors.NewConfigError("bind route list", err)
	}
	return &RouteList{elem: elem, content: content, paths: paths, log: log}, nil
}

// SetLink makes every item added afterwards an anchor to link(guid).
func (l *RouteList) SetLink(link func(guid string) string) {
	l.link = link
}

// Add appends an entry for route. Routes are keyed by GUID, so a second
// route with the same methods and path is rejected.
func (l *RouteList) Add(route *model.Route) (*RouteItem, error) {
	switch {
	case route == nil:
		return nil, errors.InvalidArgument("nil route")
	case len(route.Methods) == 0:
		return nil, errors.MissingField("methods")
	case route.Path == "":
		return nil, errors.MissingField("path")
	}
	if _, dup := l.Lookup(route.GUID()); dup {
		return nil, errors.InvalidArgument("duplicate route %s %s", strings.Join(route.Methods, ","), route.Path)
	}
	item := newRouteItem(l, route, route.Path, route.Methods[0])
	l.elem.AppendChild(item.elem)
	l.items = append(l.items, item)
	return item, nil
}

// Activate makes item the single active entry and renders its route. The
// previous entry is deactivated before item is activated, and both happen
// before the render. Activating the active item renders again.
func (l *RouteList) Activate(item *RouteItem) error {
	if item == nil || item.list != l || !slices.Contains(l.items, item) {
		return errors.InvalidArgument("route item does not belong to this list")
	}
	if l.active != item {
		if l.active != nil {
			l.active.Deactivate()
		}
		item.Activate()
		l.active = item
		l.log.Debugw("route activated", "method", item.route.PrimaryMethod(), "path", item.route.Path)
	}
	return l.content.Render(item.route)
}

func (l *RouteList) triggerActivateRoute(item *RouteItem) error {
	return l.Activate(item)
}

func (l *RouteList) Active() *RouteItem {
	return l.active
}

func (l *RouteList) Len() int {
	return len(l.items)
}

// Items returns a copy of the entries in sidebar order.
func (l *RouteList) Items() []*RouteItem {
	return slices.Clone(l.items)
}

// All iterates the entries in sidebar order.
func (l *RouteList) All() iter.Seq[*RouteItem] {
	return slices.Values(l.items)
}

func (l *RouteList) Lookup(guid string) (*RouteItem, bool) {
	for _, item := range l.items {
		if item.guid == guid {
			return item, true
		}
	}
	return nil, false
}
