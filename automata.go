// Package automata simulates finite automata over the binary alphabet
// {0, 1} and converts nondeterministic machines into deterministic ones.
//
// The engines live in subpackages:
//   - nfa: nondeterministic machines with epsilon moves, simulated by
//     tracking every reachable state in parallel
//   - dfa: deterministic machines, plus subset construction from an NFA
//   - format: a text language for writing descriptions down
//   - literal: machines that search for a set of binary keywords
//
// Basic usage:
//
//	n := nfa.New(nfa.Description{
//	    Transitions: map[nfa.State]nfa.Moves{
//	        "S": {Zero: []nfa.State{"A"}},
//	        "A": {Zero: []nfa.State{"A"}, One: []nfa.State{"A"}},
//	    },
//	    Start:  "S",
//	    Accept: []nfa.State{"A"},
//	})
//	ok, err := n.Accept("0111") // true, nil
//
//	d, err := automata.ConvertNFA(n.Description())
//	ok, err = d.Accept("0111") // true, nil
//
// This package ties the engines together: a common Machine interface,
// conversion shortcuts, loading from the text format, and bounded
// equivalence checks by exhaustive enumeration.
package automata

import (
	"fmt"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/format"
	"github.com/coregx/automata/nfa"
)

// Machine decides membership of binary strings.
//
// Both *nfa.NFA and *dfa.DFA implement Machine.
type Machine interface {
	Accept(input string) (bool, error)
}

var (
	_ Machine = (*nfa.NFA)(nil)
	_ Machine = (*dfa.DFA)(nil)
)

// ConvertNFA runs subset construction on desc and returns an engine for the
// resulting DFA. The converted table is total, so the strict policy never
// fails on it.
func ConvertNFA(desc nfa.Description) (*dfa.DFA, error) {
	out, err := dfa.Convert(desc)
	if err != nil {
		return nil, err
	}
	return dfa.New(out)
}

// Compile builds the engine for one block of a description file. nfa
// blocks become *nfa.NFA; dfa blocks become *dfa.DFA using config.
func Compile(m *format.Machine, config dfa.Config) (Machine, error) {
	switch m.Kind {
	case format.KindNFA:
		desc, err := m.NFA()
		if err != nil {
			return nil, err
		}
		return nfa.New(desc), nil
	case format.KindDFA:
		desc, err := m.DFA()
		if err != nil {
			return nil, err
		}
		return dfa.NewWithConfig(desc, config)
	default:
		return nil, fmt.Errorf("unknown machine kind %q", m.Kind)
	}
}

// Load parses src and compiles every block with the default DFA
// configuration, keyed by machine name.
func Load(src string) (map[string]Machine, error) {
	f, err := format.Parse("input", src)
	if err != nil {
		return nil, err
	}
	return compileAll(f)
}

// LoadFile is Load for the file at path.
func LoadFile(path string) (map[string]Machine, error) {
	f, err := format.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return compileAll(f)
}

func compileAll(f *format.File) (map[string]Machine, error) {
	out := make(map[string]Machine, len(f.Machines))
	for _, m := range f.Machines {
		engine, err := Compile(m, dfa.DefaultConfig())
		if err != nil {
			return nil, err
		}
		out[m.Name] = engine
	}
	return out, nil
}

// Counterexample returns the first string, shortest first, of length at
// most maxLen on which a and b disagree. found is false if they agree on
// every such string. An error from either machine stops the search.
func Counterexample(a, b Machine, maxLen int) (input string, found bool, err error) {
	for s := range alphabet.Strings(maxLen) {
		x, err := a.Accept(s)
		if err != nil {
			return s, false, err
		}
		y, err := b.Accept(s)
		if err != nil {
			return s, false, err
		}
		if x != y {
			return s, true, nil
		}
	}
	return "", false, nil
}

// Equivalent reports whether a and b agree on every string of length at
// most maxLen.
func Equivalent(a, b Machine, maxLen int) (bool, error) {
	_, found, err := Counterexample(a, b, maxLen)
	if err != nil {
		return false, err
	}
	return !found, nil
}
