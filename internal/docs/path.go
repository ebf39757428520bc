package docs

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"venomdocs/internal/dom"
)

var pathParamPattern = regexp.MustCompile(`:([^/]+)`)

// PathSegment is a piece of a display path: literal text or a URL parameter
// name.
type PathSegment struct {
	Text  string
	Param bool
}

// PathNormalizer turns route path templates into display paths: the
// /api/v<version>/ prefix is stripped and :name segments become parameter
// markers.
type PathNormalizer struct {
	prefix *regexp.Regexp
}

// NewPathNormalizer builds a normalizer for version. An empty version strips
// any /api/v<digit...> prefix; /api/videos and the like are left alone.
func NewPathNormalizer(version string) *PathNormalizer {
	v := `\d[^/]*`
	if version = strings.TrimPrefix(strings.TrimSpace(version), "v"); version != "" {
		v = regexp.QuoteMeta(version)
	}
	return &PathNormalizer{prefix: regexp.MustCompile(`^/api/v` + v + `(?:/|$)`)}
}

func (p *PathNormalizer) Strip(path string) string {
	return p.prefix.ReplaceAllString(path, "")
}

// Split strips the version prefix and cuts the remainder into literal and
// parameter segments.
func (p *PathNormalizer) Split(path string) []PathSegment {
	path = p.Strip(path)

	var out []PathSegment
	last := 0
	for _, m := range pathParamPattern.FindAllStringSubmatchIndex(path, -1) {
		if m[0] > last {
			out = append(out, PathSegment{Text: path[last:m[0]]})
		}
		out = append(out, PathSegment{Text: path[m[2]:m[3]], Param: true})
		last = m[1]
	}
	if last < len(path) {
		out = append(out, PathSegment{Text: path[last:]})
	}
	return out
}

// Display renders the normalized path as plain text, wrapping parameter names
// in open/close.
func (p *PathNormalizer) Display(path, open, close string) string {
	var b strings.Builder
	for _, seg := range p.Split(path) {
		if seg.Param {
			b.WriteString(open + seg.Text + close)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// render replaces the children of label with the normalized path, each
// parameter as a div.UrlParameter marker.
func (p *PathNormalizer) render(label *html.Node, path string) {
	dom.Clear(label)
	for _, seg := range p.Split(path) {
		if seg.Param {
			dom.New("div.UrlParameter", label, seg.Text)
			continue
		}
		dom.AppendText(label, seg.Text)
	}
}
