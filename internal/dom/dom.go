// Package dom is the rendering primitive the documentation components draw
// with: an element tree built on golang.org/x/net/html, CSS-class helpers and
// selector lookup.
//
// Elements are created from descriptors of the form "tag.class1.class2"; a
// descriptor without a tag ("" or ".class") creates a div.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// New creates an element from desc, appends it to parent when parent is not
// nil, and sets its text content when text is not empty.
func New(desc string, parent *html.Node, text string) *html.Node {
	tag, classes := parseDescriptor(desc)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	if parent != nil {
		parent.AppendChild(n)
	}
	return n
}

func parseDescriptor(desc string) (string, []string) {
	parts := strings.Split(desc, ".")
	tag := strings.ToLower(strings.TrimSpace(parts[0]))
	if tag == "" {
		tag = "div"
	}
	var classes []string
	for _, c := range parts[1:] {
		if c = strings.TrimSpace(c); c != "" {
			classes = append(classes, c)
		}
	}
	return tag, classes
}

// AppendText appends a text node to n.
func AppendText(n *html.Node, text string) {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Clear detaches every child of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	Clear(n)
	if text != "" {
		AppendText(n, text)
	}
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	return slices.Contains(Classes(n), class)
}

// AddClass adds class to el; adding a class twice is a no-op.
func AddClass(class string, el *html.Node) {
	classes := Classes(el)
	if slices.Contains(classes, class) {
		return
	}
	SetAttr(el, "class", strings.Join(append(classes, class), " "))
}

func RemoveClass(class string, el *html.Node) {
	classes := Classes(el)
	i := slices.Index(classes, class)
	if i < 0 {
		return
	}
	SetAttr(el, "class", strings.Join(slices.Delete(classes, i, i+1), " "))
}

// Find returns the first element matching selector within scope (scope
// itself included).
func Find(selector string, scope *html.Node) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	n := sel.MatchFirst(scope)
	if n == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return n, nil
}

// FindAll returns every element matching selector within scope.
func FindAll(selector string, scope *html.Node) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	return sel.MatchAll(scope), nil
}

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// String renders n to a string, for tests and diagnostics.
func String(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
