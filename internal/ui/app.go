// Package ui is the terminal frontend: a filter line, the route sidebar and
// the content pane, all driven by one docs.App.
package ui

import (
	"fmt"

	"github.com/jroimartin/gocui"
	"go.uber.org/zap"

	"venomdocs/internal/docs"
)

const (
	viewHeader  = "header"
	viewFilter  = "filter"
	viewRoutes  = "routes"
	viewContent = "content"
	viewFooter  = "footer"

	sidebarRatio = 3
	minSidebar   = 30
)

// App is not safe for concurrent use; every method runs on the gocui main
// loop.
type App struct {
	g    *gocui.Gui
	docs *docs.App
	log  *zap.SugaredLogger

	title string

	filter   string
	visible  []*docs.RouteItem
	selected int

	errorMsg string
}

func NewApp(d *docs.App, title string, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{docs: d, title: title, log: log.Named("ui").Sugar()}
	a.visible = visibleItems(d.Routes)
	return a
}

func (a *App) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	a.g = g

	g.BgColor = gocui.ColorBlack
	g.FgColor = gocui.ColorWhite
	g.InputEsc = true
	g.SetManagerFunc(a.layout)

	if err := a.bindKeys(); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	side := max(maxX/sidebarRatio, minSidebar)
	if side > maxX-10 {
		side = maxX / 2
	}

	if v, err := g.SetView(viewHeader, 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, colorGreen+a.title+colorReset+"  -  "+fmt.Sprintf("%d routes", a.docs.Routes.Len()))
	}

	if v, err := g.SetView(viewFooter, 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}

	if v, err := g.SetView(viewFilter, 0, 2, side, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Search"
	}

	if v, err := g.SetView(viewRoutes, 0, 4, side, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Routes"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}

	if v, err := g.SetView(viewContent, side+1, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Route"
		v.Wrap = true
	}

	a.renderFilter()
	a.renderRoutes()
	a.renderContent()
	a.renderFooter()

	if _, err := g.SetCurrentView(viewRoutes); err != nil {
		return err
	}
	return nil
}

func (a *App) bindKeys() error {
	g := a.g
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, a.quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyPgdn, gocui.ModNone, a.scrollContent(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyPgup, gocui.ModNone, a.scrollContent(-1)); err != nil {
		return err
	}

	if err := g.SetKeybinding(viewRoutes, gocui.KeyArrowDown, gocui.ModNone, a.moveSel(1)); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeyArrowUp, gocui.ModNone, a.moveSel(-1)); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeyEnter, gocui.ModNone, a.openRoute); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeyEsc, gocui.ModNone, a.clearFilter); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeyBackspace, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeyBackspace2, gocui.ModNone, a.filterBackspace); err != nil {
		return err
	}
	if err := g.SetKeybinding(viewRoutes, gocui.KeySpace, gocui.ModNone, a.appendFilterRune(' ')); err != nil {
		return err
	}
	for r := rune(33); r <= rune(126); r++ {
		if err := g.SetKeybinding(viewRoutes, r, gocui.ModNone, a.appendFilterRune(r)); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.setFilter(a.filter + string(r))
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.filter == "" {
		return nil
	}
	runes := []rune(a.filter)
	a.setFilter(string(runes[:len(runes)-1]))
	return nil
}

func (a *App) clearFilter(*gocui.Gui, *gocui.View) error {
	a.setFilter("")
	return nil
}

// setFilter types text into the search input and refreshes the visible
// entries, keeping the selection on the same route when it is still shown.
func (a *App) setFilter(text string) {
	var current *docs.RouteItem
	if a.selected < len(a.visible) {
		current = a.visible[a.selected]
	}

	a.filter = text
	a.docs.Type(text)
	a.visible = visibleItems(a.docs.Routes)

	a.selected = 0
	for i, item := range a.visible {
		if item == current {
			a.selected = i
			break
		}
	}
	a.log.Debugw("filter", "query", text, "visible", len(a.visible))
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.move(delta)
		return nil
	}
}

func (a *App) move(delta int) {
	if len(a.visible) == 0 {
		return
	}
	a.selected = min(max(a.selected+delta, 0), len(a.visible)-1)
}

func (a *App) openRoute(*gocui.Gui, *gocui.View) error {
	a.activateSelected()
	return nil
}

// activateSelected shows the selected route in the content pane. Render
// failures are reported in the footer and leave the previous content.
func (a *App) activateSelected() {
	if a.selected >= len(a.visible) {
		return
	}
	a.errorMsg = ""
	if err := a.docs.Routes.Activate(a.visible[a.selected]); err != nil {
		a.errorMsg = err.Error()
		a.log.Warnw("route not shown", "error", err)
	}
	if a.g != nil {
		if v, err := a.g.View(viewContent); err == nil {
			v.SetOrigin(0, 0)
		}
	}
}

func (a *App) scrollContent(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, _ *gocui.View) error {
		v, err := g.View(viewContent)
		if err != nil {
			return nil
		}
		_, h := v.Size()
		ox, oy := v.Origin()
		oy = max(oy+delta*max(h-1, 1), 0)
		return v.SetOrigin(ox, oy)
	}
}

func (a *App) renderFooter() {
	v, err := a.g.View(viewFooter)
	if err != nil {
		return
	}
	v.Clear()
	msg := "type: search   up/down: move   enter: open   esc: clear search   pgup/pgdn: scroll   ctrl+c: quit"
	if a.errorMsg != "" {
		msg = colorRed + a.errorMsg + colorReset
	}
	fmt.Fprint(v, msg)
}

func (a *App) renderFilter() {
	v, err := a.g.View(viewFilter)
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, a.filter)
}

func (a *App) renderRoutes() {
	v, err := a.g.View(viewRoutes)
	if err != nil {
		return
	}
	v.Clear()
	for _, item := range a.visible {
		fmt.Fprintln(v, routeLine(item))
	}
	_, h := v.Size()
	oy := 0
	if h > 0 && a.selected >= h {
		oy = a.selected - h + 1
	}
	_ = v.SetOrigin(0, oy)
	_ = v.SetCursor(0, a.selected-oy)
}

func (a *App) renderContent() {
	v, err := a.g.View(viewContent)
	if err != nil {
		return
	}
	v.Clear()
	lines := contentLines(a.docs.Content.Element())
	if len(lines) == 0 {
		fmt.Fprintln(v, colorDim+"Select a route and press enter."+colorReset)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(v, line)
	}
}
