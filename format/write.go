package format

import (
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/nfa"
)

var (
	plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.']*$`)
	plainInt   = regexp.MustCompile(`^[0-9]+$`)
)

var keywords = map[string]struct{}{
	"nfa": {}, "dfa": {}, "start": {}, "accept": {}, "eps": {}, "lambda": {},
}

// quote renders a label so that it lexes back as a single token.
func quote(label string) string {
	if _, kw := keywords[label]; !kw && (plainIdent.MatchString(label) || plainInt.MatchString(label)) {
		return label
	}
	return strconv.Quote(label)
}

func list[S ~string](states []S) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = quote(string(s))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteNFA writes d as an nfa block. States are written in sorted order
// and targets are sorted and deduplicated, so equal descriptions produce
// equal text. States without any move are not written.
func WriteNFA(w io.Writer, name string, d nfa.Description) error {
	var b strings.Builder
	b.WriteString("nfa " + quote(name) + " {\n")
	b.WriteString("  start " + quote(string(d.Start)) + "\n")
	b.WriteString("  accept " + list(sortedUnique(d.Accept)) + "\n")

	states := make([]nfa.State, 0, len(d.Transitions))
	for s := range d.Transitions {
		states = append(states, s)
	}
	slices.Sort(states)

	for _, s := range states {
		m := d.Transitions[s]
		for _, sym := range [...]alphabet.Symbol{alphabet.Zero, alphabet.One, alphabet.Epsilon} {
			targets := sortedUnique(m.On(sym))
			if len(targets) == 0 {
				continue
			}
			b.WriteString("  " + quote(string(s)) + " " + sym.String() + " -> ")
			if len(targets) == 1 {
				b.WriteString(quote(string(targets[0])))
			} else {
				b.WriteString(list(targets))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDFA writes d as a dfa block. Rows reachable from the start state
// come first in breadth-first order, the rest follow sorted.
func WriteDFA(w io.Writer, name string, d dfa.Description) error {
	var b strings.Builder
	b.WriteString("dfa " + quote(name) + " {\n")
	b.WriteString("  start " + quote(string(d.Start)) + "\n")
	b.WriteString("  accept " + list(d.Accept) + "\n")

	var states []dfa.State
	written := make(map[dfa.State]struct{}, len(d.Transitions))
	for _, s := range d.Reachable() {
		if _, ok := d.Transitions[s]; ok {
			states = append(states, s)
			written[s] = struct{}{}
		}
	}
	var rest []dfa.State
	for s := range d.Transitions {
		if _, ok := written[s]; !ok {
			rest = append(rest, s)
		}
	}
	slices.Sort(rest)
	states = append(states, rest...)

	for _, s := range states {
		row := d.Transitions[s]
		b.WriteString("  " + quote(string(s)) + " 0 -> " + quote(string(row.Zero)) + "\n")
		b.WriteString("  " + quote(string(s)) + " 1 -> " + quote(string(row.One)) + "\n")
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func sortedUnique[S ~string](in []S) []S {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
