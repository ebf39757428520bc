package docs

import (
	"strings"

	"venomdocs/internal/dom"
)

// fuzzyMatchScore returns (score, ok). Lower score is better.
// Matching is a simple case-insensitive subsequence match.
func fuzzyMatchScore(needle, haystack string) (int, bool) {
	needle = strings.ToLower(needle)
	haystack = strings.ToLower(haystack)
	if needle == "" {
		return 0, true
	}

	score := 0
	j := 0
	for i := 0; i < len(haystack) && j < len(needle); i++ {
		if haystack[i] == needle[j] {
			score += i
			j++
		}
	}
	if j != len(needle) {
		return 0, false
	}
	return score, true
}

// matchText is what a route entry is searched by: its methods, its raw path
// and the first line of its docstring.
func matchText(item *RouteItem) string {
	r := item.Route()
	doc, _, _ := strings.Cut(r.Docstring, "\n")
	return strings.Join(r.Methods, " ") + " " + r.Path + " " + doc
}

// RouteMatcher hides the entries that do not fuzzy-match the query and shows
// the rest. An empty query shows everything.
func RouteMatcher() Matcher[*RouteItem] {
	return MatchFunc[*RouteItem](func(query string, item *RouteItem) {
		query = strings.Join(strings.Fields(query), "")
		if _, ok := fuzzyMatchScore(query, matchText(item)); ok {
			dom.RemoveClass(classHidden, item.Element())
			return
		}
		dom.AddClass(classHidden, item.Element())
	})
}
