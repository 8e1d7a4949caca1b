package literal

import (
	"github.com/coregx/ahocorasick"
)

// Matcher searches inputs for the keywords of a Set with an Aho-Corasick
// automaton. It answers the same question as the automaton from Set.NFA in
// a single pass without tracking state sets.
type Matcher struct {
	set *Set
	ac  *ahocorasick.Automaton
}

// Matcher compiles the keywords into an Aho-Corasick automaton.
func (s *Set) Matcher() (*Matcher, error) {
	builder := ahocorasick.NewBuilder()
	for _, w := range s.words {
		builder.AddPattern([]byte(w))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Matcher{set: s, ac: auto}, nil
}

// Set returns the keyword set the matcher was built from.
func (m *Matcher) Set() *Set {
	return m.set
}

// IsMatch reports whether input contains any keyword.
func (m *Matcher) IsMatch(input string) bool {
	return m.ac.IsMatch([]byte(input))
}

// Find returns the span of the first keyword occurrence in input.
func (m *Matcher) Find(input string) (start, end int, ok bool) {
	match := m.ac.Find([]byte(input), 0)
	if match == nil {
		return -1, -1, false
	}
	return match.Start, match.End, true
}
