package model

import (
	"strings"

	"github.com/google/uuid"
)

// AttrRequired is the attribute key rendered as "required"/"optional".
const AttrRequired = "required"

// Attribute is one entry of a parameter's attribute mapping. Value is a
// bool, string or number (json.Number, int or float64 depending on the
// decoder); list values ([]any) appear for choice sets.
type Attribute struct {
	Key   string
	Value any
}

// Attributes keeps insertion order, which is also display order.
type Attributes []Attribute

func (a Attributes) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

type ParamSpec struct {
	Type       string     `json:"type" yaml:"type"`
	Attributes Attributes `json:"attributes" yaml:"attributes"`
}

type Param struct {
	Name string
	Spec ParamSpec
}

// Params is an ordered name -> ParamSpec mapping. A nil Params means the
// field was absent from the route; an empty non-nil one means it was present
// with no parameters.
type Params []Param

func (p Params) Get(name string) (ParamSpec, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Spec, true
		}
	}
	return ParamSpec{}, false
}

type Body struct {
	Template Params `json:"template" yaml:"template"`
}

// Route is the documentation schema of one API endpoint. Routes are treated
// as immutable once handed to the viewer.
type Route struct {
	Methods   []string `json:"methods" yaml:"methods"`
	Path      string   `json:"path" yaml:"path"`
	URL       Params   `json:"url" yaml:"url"`
	Query     Params   `json:"query" yaml:"query"`
	Headers   Params   `json:"headers" yaml:"headers"`
	Body      *Body    `json:"body" yaml:"body"`
	Docstring string   `json:"docstring,omitempty" yaml:"docstring,omitempty"`
}

// PrimaryMethod returns the first method, or "" when there is none.
func (r *Route) PrimaryMethod() string {
	if r == nil || len(r.Methods) == 0 {
		return ""
	}
	return r.Methods[0]
}

// GUID returns a stable identifier derived from the methods and path.
func (r *Route) GUID() string {
	key := strings.ToUpper(strings.Join(r.Methods, ",")) + " " + r.Path
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
