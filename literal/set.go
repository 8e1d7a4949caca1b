// Package literal builds automata for sets of binary keywords.
//
// A Set recognizes every input that contains at least one of its keywords
// as a substring. It can be compiled two ways: as an NFA description that
// feeds the general engines (and subset construction), or as an
// Aho-Corasick automaton for direct multi-keyword search.
package literal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/nfa"
)

// ErrEmptySet indicates a Set was created without keywords.
var ErrEmptySet = errors.New("literal set has no keywords")

// ErrEmptyKeyword indicates an empty keyword, which would match everything.
var ErrEmptyKeyword = errors.New("empty keyword")

// State labels used by Set.NFA.
const (
	// ScanState is the start state. It loops on both symbols so a keyword
	// may begin at any offset.
	ScanState nfa.State = "scan"

	// HitState is entered by epsilon from the end of any keyword and loops
	// on both symbols. It is the only accept state.
	HitState nfa.State = "hit"

	prefixTag = "w:"
)

// Set is an immutable set of binary keywords.
type Set struct {
	words []string
}

// NewSet validates and deduplicates words. Each word must be a non-empty
// string over '0' and '1'.
func NewSet(words ...string) (*Set, error) {
	if len(words) == 0 {
		return nil, ErrEmptySet
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			return nil, ErrEmptyKeyword
		}
		if _, err := alphabet.ParseInput(w); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", w, err)
		}
		out = append(out, w)
	}
	slices.Sort(out)
	return &Set{words: slices.Compact(out)}, nil
}

// Words returns the keywords, sorted and deduplicated.
func (s *Set) Words() []string {
	return slices.Clone(s.words)
}

// Len returns the number of distinct keywords.
func (s *Set) Len() int {
	return len(s.words)
}

// NFA returns a description accepting exactly the inputs that contain a
// keyword.
//
// The keywords form a trie hanging off ScanState; trie node labels are the
// keyword prefix they spell, tagged with "w:". A node that completes a
// keyword has an epsilon move into HitState.
func (s *Set) NFA() nfa.Description {
	b := nfa.NewBuilder().
		Start(ScanState).
		Accept(HitState).
		Add(ScanState, alphabet.Zero, ScanState).
		Add(ScanState, alphabet.One, ScanState).
		Add(HitState, alphabet.Zero, HitState).
		Add(HitState, alphabet.One, HitState)

	nodes := make(map[nfa.State]struct{})
	for _, w := range s.words {
		parent := ScanState
		for i := 1; i <= len(w); i++ {
			node := nfa.State(prefixTag + w[:i])
			if _, ok := nodes[node]; !ok {
				nodes[node] = struct{}{}
				sym := alphabet.Zero
				if w[i-1] == '1' {
					sym = alphabet.One
				}
				b.Add(parent, sym, node)
			}
			parent = node
		}
		b.Epsilon(parent, HitState)
	}
	// every call above uses valid symbols and a start state
	return b.MustBuild()
}
