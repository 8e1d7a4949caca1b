// Package dfa implements a deterministic finite automaton over the binary
// alphabet {0, 1}, together with the subset construction that converts an
// nfa.NFA into an equivalent DFA.
//
// Acceptance is a single pass of table lookups. Conversion explores the
// reachable sets of NFA states breadth-first, naming each set canonically so
// that equal sets reached along different paths become the same DFA state:
//
//	d, err := dfa.Convert(nfaDescription)
//	if err != nil {
//	    return err
//	}
//	engine, err := dfa.New(d)
package dfa

import (
	"fmt"
	"slices"

	"github.com/coregx/automata/alphabet"
)

// State is an opaque state label. Equality is by value.
type State string

// Row holds the two outgoing transitions of a state.
type Row struct {
	Zero State
	One  State
}

// On returns the target for an input symbol.
// Returns ("", false) for Epsilon and invalid symbols.
func (r Row) On(sym alphabet.Symbol) (State, bool) {
	switch sym {
	case alphabet.Zero:
		return r.Zero, true
	case alphabet.One:
		return r.One, true
	}
	return "", false
}

// Description is the declarative form of a DFA.
type Description struct {
	Transitions map[State]Row
	Start       State
	Accept      []State
}

// Clone returns a deep copy of d.
func (d Description) Clone() Description {
	out := Description{
		Transitions: make(map[State]Row, len(d.Transitions)),
		Start:       d.Start,
		Accept:      slices.Clone(d.Accept),
	}
	for s, r := range d.Transitions {
		out.Transitions[s] = r
	}
	return out
}

// Reachable returns the states reachable from Start, in breadth-first
// order with the 0 edge explored before the 1 edge. States without a row
// are included but not expanded.
func (d Description) Reachable() []State {
	seen := map[State]struct{}{d.Start: {}}
	order := []State{d.Start}
	for i := 0; i < len(order); i++ {
		r, ok := d.Transitions[order[i]]
		if !ok {
			continue
		}
		for _, next := range [...]State{r.Zero, r.One} {
			if _, dup := seen[next]; !dup {
				seen[next] = struct{}{}
				order = append(order, next)
			}
		}
	}
	return order
}

// Validate reports the first reachable state without a row as an
// ErrUndefinedState error. A description that validates is total: every
// reachable state has exactly one transition per input symbol.
func (d Description) Validate() error {
	for _, s := range d.Reachable() {
		if _, ok := d.Transitions[s]; !ok {
			return &DFAError{
				Kind:    UndefinedState,
				Message: "undefined state",
				State:   s,
			}
		}
	}
	return nil
}

// DFA is a deterministic finite automaton over {0, 1}.
//
// A DFA is immutable after construction and safe for concurrent use.
type DFA struct {
	desc   Description
	accept map[State]struct{}
	config Config
}

// New creates a DFA with the default (strict) configuration.
func New(desc Description) (*DFA, error) {
	return NewWithConfig(desc, DefaultConfig())
}

// NewWithConfig creates a DFA with the given configuration.
// The description is copied.
func NewWithConfig(desc Description, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	desc = desc.Clone()
	accept := make(map[State]struct{}, len(desc.Accept))
	for _, s := range desc.Accept {
		accept[s] = struct{}{}
	}
	if config.Policy == Sink {
		if _, ok := accept[config.DeadState]; ok {
			return nil, &DFAError{
				Kind:    InvalidConfig,
				Message: "dead state must not be an accept state",
				State:   config.DeadState,
			}
		}
	}
	return &DFA{desc: desc, accept: accept, config: config}, nil
}

// Description returns a copy of the description the DFA was built from.
func (d *DFA) Description() Description {
	return d.desc.Clone()
}

// Config returns the engine configuration.
func (d *DFA) Config() Config {
	return d.config
}

// Start returns the start state.
func (d *DFA) Start() State {
	return d.desc.Start
}

// States returns the states that have a row, sorted.
func (d *DFA) States() []State {
	out := make([]State, 0, len(d.desc.Transitions))
	for s := range d.desc.Transitions {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsAccept reports whether s is an accept state.
func (d *DFA) IsAccept(s State) bool {
	_, ok := d.accept[s]
	return ok
}

// Transition returns the unique successor of state on sym.
//
// Under the Strict policy a state without a row fails with
// ErrUndefinedTransition. Under the Sink policy it moves to the dead state.
// Epsilon and invalid symbols fail with ErrUnknownSymbol.
func (d *DFA) Transition(state State, sym alphabet.Symbol) (State, error) {
	if !sym.IsInput() {
		return "", unknownSymbol(sym, -1)
	}
	r, ok := d.desc.Transitions[state]
	if !ok {
		if d.config.Policy == Sink {
			return d.config.DeadState, nil
		}
		return "", undefinedTransition(state, sym)
	}
	next, _ := r.On(sym)
	return next, nil
}

// Run returns the state reached after consuming input from the start state.
func (d *DFA) Run(input string) (State, error) {
	syms, err := alphabet.ParseInput(input)
	if err != nil {
		return "", err
	}
	return d.run(syms)
}

func (d *DFA) run(input []alphabet.Symbol) (State, error) {
	state := d.desc.Start
	for i, sym := range input {
		if !sym.IsInput() {
			return "", unknownSymbol(sym, i)
		}
		next, err := d.Transition(state, sym)
		if err != nil {
			return "", err
		}
		state = next
	}
	return state, nil
}

// Accept reports whether the DFA accepts input, a string over '0' and '1'.
// The empty string is accepted iff the start state is an accept state.
func (d *DFA) Accept(input string) (bool, error) {
	final, err := d.Run(input)
	if err != nil {
		return false, err
	}
	return d.IsAccept(final), nil
}

// AcceptSymbols is Accept over pre-parsed symbols.
func (d *DFA) AcceptSymbols(input []alphabet.Symbol) (bool, error) {
	final, err := d.run(input)
	if err != nil {
		return false, err
	}
	return d.IsAccept(final), nil
}

// String returns a short summary of the DFA
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, start: %q, accept: %v, policy: %v}",
		len(d.desc.Transitions), d.desc.Start, d.desc.Accept, d.config.Policy)
}
