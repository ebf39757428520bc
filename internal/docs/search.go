package docs

import (
	"iter"
	"reflect"
)

// TextInput is the text box a SearchFilter reads its query from.
type TextInput interface {
	Value() string
}

// InputText is a fixed query, for callers without a live input.
type InputText string

func (t InputText) Value() string { return string(t) }

// Matcher decides what a query means for one candidate. It owns every effect
// of matching (hiding, highlighting); SearchFilter only drives it.
type Matcher[V any] interface {
	Match(query string, value V)
}

// MatchFunc adapts a function to Matcher.
type MatchFunc[V any] func(query string, value V)

func (f MatchFunc[V]) Match(query string, value V) { f(query, value) }

// SearchFilter re-applies a Matcher to a freshly pulled candidate sequence on
// every keystroke. It keeps no list state of its own.
type SearchFilter[V any] struct {
	input  TextInput
	getter func() iter.Seq[V]
	filter Matcher[V]
}

// NewSearchFilter returns an inert filter: the getter yields nothing and the
// matcher does nothing.
func NewSearchFilter[V any]() *SearchFilter[V] {
	s := &SearchFilter[V]{}
	s.SetGetter(nil)
	s.SetFilter(nil)
	return s
}

// SetGetter replaces the candidate source. nil restores the empty source.
func (s *SearchFilter[V]) SetGetter(getter func() iter.Seq[V]) {
	if getter == nil {
		getter = func() iter.Seq[V] { return func(func(V) bool) {} }
	}
	s.getter = getter
}

// SetFilter replaces the matcher. nil, including a typed nil such as a nil
// MatchFunc or nil pointer, restores the no-op matcher.
func (s *SearchFilter[V]) SetFilter(filter Matcher[V]) {
	if isNil(filter) {
		filter = MatchFunc[V](func(string, V) {})
	}
	s.filter = filter
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Bind associates the text input whose value is the query.
func (s *SearchFilter[V]) Bind(input TextInput) {
	s.input = input
}

func (s *SearchFilter[V]) Query() string {
	if s.input == nil {
		return ""
	}
	return s.input.Value()
}

// Update pulls the current candidates and hands each one, in order, to the
// matcher together with the current query.
func (s *SearchFilter[V]) Update() {
	seq := s.getter()
	if seq == nil {
		return
	}
	query := s.Query()
	for value := range seq {
		s.filter.Match(query, value)
	}
}

// HandleKeyPress and HandleKeyUp are both bound to Update, so one typed
// character may update twice.
func (s *SearchFilter[V]) HandleKeyPress() { s.Update() }

func (s *SearchFilter[V]) HandleKeyUp() { s.Update() }
