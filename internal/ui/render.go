package ui

import (
	"strings"

	"golang.org/x/net/html"

	"venomdocs/internal/docs"
	"venomdocs/internal/dom"
)

// ansi colors
const (
	colorDim     = "\033[90m"
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

const cellGap = "  "

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func colorizeMethod(method string) string {
	var color string
	switch strings.ToUpper(method) {
	case "GET":
		color = colorBlue
	case "POST":
		color = colorGreen
	case "PUT":
		color = colorYellow
	case "DELETE":
		color = colorRed
	case "PATCH":
		color = colorCyan
	case "HEAD":
		color = colorMagenta
	default:
		color = colorReset
	}
	return color + padRight(method, 6) + colorReset
}

// displayPath joins path segments, parameters highlighted as :name.
func displayPath(segs []docs.PathSegment) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Param {
			b.WriteString(colorCyan + ":" + seg.Text + colorReset)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// visibleItems returns the sidebar entries the search filter left shown.
func visibleItems(list *docs.RouteList) []*docs.RouteItem {
	var out []*docs.RouteItem
	for item := range list.All() {
		if !item.Hidden() {
			out = append(out, item)
		}
	}
	return out
}

func routeLine(item *docs.RouteItem) string {
	marker := "  "
	if item.Active() {
		marker = colorGreen + "> " + colorReset
	}
	return marker + colorizeMethod(item.Method()) + " " + displayPath(item.PathSegments())
}

// labelText renders a path label, UrlParameter markers highlighted.
func labelText(label *html.Node) string {
	var b strings.Builder
	for c := label.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case dom.HasClass(c, "UrlParameter"):
			b.WriteString(colorCyan + ":" + dom.Text(c) + colorReset)
		default:
			b.WriteString(dom.Text(c))
		}
	}
	return b.String()
}

// contentLines projects the content panel markup onto terminal lines. An
// empty panel yields no lines.
func contentLines(panel *html.Node) []string {
	method, err := dom.Find(".js-Method", panel)
	if err != nil {
		return nil
	}
	m := dom.Text(method)
	if m == "" {
		return nil
	}

	header := colorizeMethod(m)
	if path, err := dom.Find(".js-Path", panel); err == nil {
		header += " " + labelText(path)
	}
	lines := []string{header}

	params, err := dom.Find(".js-Parameters", panel)
	if err != nil {
		return lines
	}
	for _, section := range dom.Children(params) {
		lines = append(lines, "")
		lines = append(lines, sectionLines(section)...)
	}
	return lines
}

func sectionLines(section *html.Node) []string {
	var lines []string
	for _, child := range dom.Children(section) {
		switch {
		case child.Data == "h3":
			lines = append(lines, colorBold+dom.Text(child)+colorReset)
		case dom.HasClass(child, "Docstring"):
			lines = append(lines, strings.Split(dom.Text(child), "\n")...)
		case dom.HasClass(child, "ParameterTable"):
			lines = append(lines, tableLines(child)...)
		}
	}
	return lines
}

// tableLines lays a parameter table out in padded columns. Attribute chips
// are joined with commas.
func tableLines(table *html.Node) []string {
	var rows [][]string
	var header []bool
	for _, row := range dom.Children(table) {
		var cells []string
		for _, cell := range dom.Children(row) {
			if dom.HasClass(cell, "ParameterTable-Attributes") {
				var chips []string
				for _, chip := range dom.Children(cell) {
					chips = append(chips, dom.Text(chip))
				}
				cells = append(cells, strings.Join(chips, ", "))
				continue
			}
			cells = append(cells, dom.Text(cell))
		}
		rows = append(rows, cells)
		header = append(header, dom.HasClass(row, "ParameterTable-Row--header"))
	}

	var widths []int
	for _, cells := range rows {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len(c))
		}
	}

	lines := make([]string, 0, len(rows))
	for r, cells := range rows {
		var b strings.Builder
		for i, c := range cells {
			if i < len(cells)-1 {
				c = padRight(c, widths[i]) + cellGap
			}
			b.WriteString(c)
		}
		line := strings.TrimRight(b.String(), " ")
		if header[r] {
			line = colorDim + line + colorReset
		}
		lines = append(lines, "  "+line)
	}
	return lines
}
