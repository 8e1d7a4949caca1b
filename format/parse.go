package format

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/nfa"
)

// Machine kinds
const (
	KindNFA = "nfa"
	KindDFA = "dfa"
)

// ParseError reports a description that is well-formed text but not a valid
// automaton.
type ParseError struct {
	Pos     lexer.Position
	Machine string
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Machine != "" {
		return fmt.Sprintf("%s: machine %q: %s", e.Pos, e.Machine, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parse parses src. filename is only used in error positions.
// Duplicate machine names are rejected.
func Parse(filename, src string) (*File, error) {
	f, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(f.Machines))
	for _, m := range f.Machines {
		if _, dup := seen[m.Name]; dup {
			return nil, &ParseError{Pos: m.Pos, Machine: m.Name, Message: "duplicate machine name"}
		}
		seen[m.Name] = struct{}{}
	}
	return f, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}

// Lookup returns the machine with the given name.
func (f *File) Lookup(name string) (*Machine, bool) {
	for _, m := range f.Machines {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Names returns the machine names in file order.
func (f *File) Names() []string {
	out := make([]string, len(f.Machines))
	for i, m := range f.Machines {
		out[i] = m.Name
	}
	return out
}

// NFA returns the description of the named nfa block.
func (f *File) NFA(name string) (nfa.Description, error) {
	m, ok := f.Lookup(name)
	if !ok {
		return nfa.Description{}, fmt.Errorf("no machine named %q", name)
	}
	return m.NFA()
}

// DFA returns the description of the named dfa block.
func (f *File) DFA(name string) (dfa.Description, error) {
	m, ok := f.Lookup(name)
	if !ok {
		return dfa.Description{}, fmt.Errorf("no machine named %q", name)
	}
	return m.DFA()
}

func (m *Machine) errorf(pos lexer.Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Machine: m.Name, Message: fmt.Sprintf(format, args...)}
}

// start returns the single start state of the block.
func (m *Machine) start() (string, error) {
	var start *string
	for _, it := range m.Items {
		if it.Start == nil {
			continue
		}
		if start != nil {
			return "", m.errorf(it.Pos, "start state declared twice")
		}
		start = it.Start
	}
	if start == nil {
		return "", m.errorf(m.Pos, "no start state")
	}
	return *start, nil
}

// NFA converts an nfa block into a description.
func (m *Machine) NFA() (nfa.Description, error) {
	if m.Kind != KindNFA {
		return nfa.Description{}, m.errorf(m.Pos, "is a %s, not an nfa", m.Kind)
	}
	start, err := m.start()
	if err != nil {
		return nfa.Description{}, err
	}

	b := nfa.NewBuilder().Start(nfa.State(start))
	for _, it := range m.Items {
		switch {
		case it.Accept != nil:
			for _, s := range it.Accept.States {
				b.Accept(nfa.State(s))
			}
		case it.Transition != nil:
			tr := it.Transition
			sym, err := alphabet.Parse(tr.Symbol)
			if err != nil {
				return nfa.Description{}, m.errorf(tr.Pos, "%v", err)
			}
			targets := make([]nfa.State, len(tr.Targets))
			for i, s := range tr.Targets {
				targets[i] = nfa.State(s)
			}
			b.Add(nfa.State(tr.From), sym, targets...)
		}
	}
	return b.Build()
}

// DFA converts a dfa block into a description. Every state with a
// transition line must define both symbols exactly once.
func (m *Machine) DFA() (dfa.Description, error) {
	if m.Kind != KindDFA {
		return dfa.Description{}, m.errorf(m.Pos, "is a %s, not a dfa", m.Kind)
	}
	start, err := m.start()
	if err != nil {
		return dfa.Description{}, err
	}

	desc := dfa.Description{
		Transitions: make(map[dfa.State]dfa.Row),
		Start:       dfa.State(start),
	}
	type partial struct {
		row      dfa.Row
		has      [2]bool
		firstPos lexer.Position
	}
	rows := make(map[dfa.State]*partial)
	var order []dfa.State

	for _, it := range m.Items {
		switch {
		case it.Accept != nil:
			for _, s := range it.Accept.States {
				desc.Accept = append(desc.Accept, dfa.State(s))
			}
		case it.Transition != nil:
			tr := it.Transition
			sym, err := alphabet.Parse(tr.Symbol)
			if err != nil {
				return dfa.Description{}, m.errorf(tr.Pos, "%v", err)
			}
			if !sym.IsInput() {
				return dfa.Description{}, m.errorf(tr.Pos, "epsilon move in a dfa")
			}
			if len(tr.Targets) != 1 {
				return dfa.Description{}, m.errorf(tr.Pos, "dfa move needs exactly one target, got %d", len(tr.Targets))
			}
			from := dfa.State(tr.From)
			p, ok := rows[from]
			if !ok {
				p = &partial{firstPos: tr.Pos}
				rows[from] = p
				order = append(order, from)
			}
			if p.has[sym] {
				return dfa.Description{}, m.errorf(tr.Pos, "state %q has two moves on %v", tr.From, sym)
			}
			p.has[sym] = true
			if sym == alphabet.Zero {
				p.row.Zero = dfa.State(tr.Targets[0])
			} else {
				p.row.One = dfa.State(tr.Targets[0])
			}
		}
	}

	for _, s := range order {
		p := rows[s]
		for _, sym := range alphabet.Inputs {
			if !p.has[sym] {
				return dfa.Description{}, m.errorf(p.firstPos, "state %q has no move on %v", s, sym)
			}
		}
		desc.Transitions[s] = p.row
	}
	return desc, nil
}
