package docs

import (
	"golang.org/x/net/html"

	"venomdocs/internal/dom"
	"venomdocs/internal/model"
)

// Columns are the three header labels of a parameter table.
type Columns [3]string

var (
	ParamColumns  = Columns{"Key", "Type", "Attributes"}
	HeaderColumns = Columns{"Header", "Type", "Attributes"}
)

// parameterGroup is one of the parameter sections, in render order.
type parameterGroup struct {
	title   string
	columns Columns
	params  func(*model.Route) model.Params
}

var parameterGroups = []parameterGroup{
	{"URL Parameters", ParamColumns, func(r *model.Route) model.Params { return r.URL }},
	{"Header Parameters", HeaderColumns, func(r *model.Route) model.Params { return r.Headers }},
	{"Query Parameters", ParamColumns, func(r *model.Route) model.Params { return r.Query }},
	{"Body Parameters", ParamColumns, func(r *model.Route) model.Params { return r.Body.Template }},
}

// RenderAttribute returns the chip text of one attribute: "required" or
// "optional" for the required flag, "key=value" for anything else.
func RenderAttribute(attr model.Attribute) string {
	if attr.Key == model.AttrRequired {
		if required, _ := attr.Value.(bool); required {
			return "required"
		}
		return "optional"
	}
	return attr.Key + "=" + model.FormatValue(attr.Value)
}

func RenderAttributes(attrs model.Attributes) []string {
	out := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, RenderAttribute(attr))
	}
	return out
}

// renderParameterDict appends a parameter section to parent. Nothing is
// emitted for an empty mapping and the returned node is nil.
func renderParameterDict(parent *html.Node, params model.Params, title string, columns Columns) *html.Node {
	if len(params) == 0 {
		return nil
	}

	section := dom.New("section.ParameterSection", parent, "")
	dom.New("h3.ParameterSection-Title", section, title)
	table := dom.New("div.ParameterTable", section, "")

	header := dom.New("div.ParameterTable-Row.ParameterTable-Row--header", table, "")
	for _, label := range columns {
		dom.New("div.ParameterTable-Cell", header, label)
	}

	for _, p := range params {
		row := dom.New("div.ParameterTable-Row", table, "")
		dom.New("div.ParameterTable-Cell.ParameterTable-Key", row, p.Name)
		dom.New("div.ParameterTable-Cell.ParameterTable-Type", row, p.Spec.Type)
		cell := dom.New("div.ParameterTable-Cell.ParameterTable-Attributes", row, "")
		for _, chip := range RenderAttributes(p.Spec.Attributes) {
			dom.New("div.Attribute", cell, chip)
		}
	}
	return section
}

func renderDocstring(parent *html.Node, docstring string) *html.Node {
	if docstring == "" {
		return nil
	}
	section := dom.New("section.DocstringSection", parent, "")
	dom.New("h3.DocstringSection-Title", section, "Description")
	dom.New("div.Docstring", section, docstring)
	return section
}
