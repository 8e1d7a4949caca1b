package dfa

import (
	"fmt"
	"slices"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/nfa"
)

// Builder converts an NFA into an equivalent DFA by subset construction.
//
// The construction:
//  1. Start from the epsilon-closure of the NFA start state
//  2. Pop composite states from a FIFO queue
//  3. For each input symbol, move every member one hop and close the result
//  4. Route empty results to a shared dead state
//  5. Enqueue results whose key has not been seen
//
// Every composite is enqueued at most once, so an N-state NFA yields at
// most 2^N composites and the loop terminates.
type Builder struct {
	nfa    *nfa.NFA
	config BuildConfig
}

// NewBuilder creates a new subset construction builder for the given NFA
func NewBuilder(n *nfa.NFA, config BuildConfig) *Builder {
	return &Builder{
		nfa:    n,
		config: config,
	}
}

// Conversion is the result of subset construction.
type Conversion struct {
	desc      Description
	members   map[State][]nfa.State
	order     []State
	dead      bool
	deadState State
}

// Description returns a copy of the converted DFA description.
func (c *Conversion) Description() Description {
	return c.desc.Clone()
}

// Members returns the NFA states a DFA state stands for, sorted.
// The dead state has no members. Unknown states return (nil, false).
func (c *Conversion) Members(s State) ([]nfa.State, bool) {
	m, ok := c.members[s]
	if !ok {
		return nil, false
	}
	return slices.Clone(m), true
}

// States returns the DFA states in discovery order: the start state first,
// the dead state (if any) last.
func (c *Conversion) States() []State {
	return slices.Clone(c.order)
}

// Len returns the number of DFA states, including the dead state.
func (c *Conversion) Len() int {
	return len(c.order)
}

// DeadState returns the dead state label and whether the DFA uses it.
// The label is BuildConfig.DeadState unless an NFA-derived state already
// holds that name, in which case primes are appended.
func (c *Conversion) DeadState() (State, bool) {
	return c.deadState, c.dead
}

// Build runs the construction.
// Returns ErrInvalidConfig or ErrStateLimitExceeded.
//
// A composite whose joined name is already taken, because NFA labels contain
// the separator, gets primes appended until the name is free. The dead state
// is labeled the same way once the construction knows it needs one, so an
// NFA state spelled like the dead label never blocks conversion.
func (b *Builder) Build() (*Conversion, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	n := b.nfa
	conv := &Conversion{
		desc: Description{
			Transitions: make(map[State]Row),
		},
		members:   make(map[State][]nfa.State),
		deadState: b.config.DeadState,
	}
	discovered := make(map[StateKey]State)
	taken := make(map[State]struct{})
	// moves into the dead state, patched once its label is chosen
	var deadMoves []deadMove

	register := func(c *composite) error {
		if len(discovered) >= b.config.MaxStates {
			return &DFAError{
				Kind:    StateLimitExceeded,
				Message: fmt.Sprintf("more than %d composite states", b.config.MaxStates),
				State:   c.name,
			}
		}
		c.name = unusedLabel(c.name, taken)
		taken[c.name] = struct{}{}
		discovered[c.key] = c.name
		conv.members[c.name] = c.labels(n)
		conv.order = append(conv.order, c.name)
		if c.accepting(n) {
			conv.desc.Accept = append(conv.desc.Accept, c.name)
		}
		return nil
	}

	start := newComposite(n, n.Closure(n.StartID()), b.config.Separator)
	if err := register(&start); err != nil {
		return nil, err
	}
	conv.desc.Start = start.name

	queue := []composite{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var row Row
		for _, sym := range alphabet.Inputs {
			next := b.move(cur.members, sym)
			if len(next) == 0 {
				deadMoves = append(deadMoves, deadMove{from: cur.name, sym: sym})
				continue
			}
			c := newComposite(n, next, b.config.Separator)
			name, seen := discovered[c.key]
			if !seen {
				if err := register(&c); err != nil {
					return nil, err
				}
				queue = append(queue, c)
				name = c.name
			}
			row.set(sym, name)
		}
		conv.desc.Transitions[cur.name] = row
	}

	if len(deadMoves) > 0 {
		dead := unusedLabel(b.config.DeadState, taken)
		for _, m := range deadMoves {
			row := conv.desc.Transitions[m.from]
			row.set(m.sym, dead)
			conv.desc.Transitions[m.from] = row
		}
		conv.desc.Transitions[dead] = Row{Zero: dead, One: dead}
		conv.members[dead] = nil
		conv.order = append(conv.order, dead)
		conv.dead = true
		conv.deadState = dead
	}
	return conv, nil
}

type deadMove struct {
	from State
	sym  alphabet.Symbol
}

// unusedLabel returns label, with primes appended until it is not taken.
func unusedLabel(label State, taken map[State]struct{}) State {
	for {
		if _, ok := taken[label]; !ok {
			return label
		}
		label += "'"
	}
}

// move computes the epsilon-closure of the one-hop successors of members
// on sym. Returns nil when no member has a move on sym.
func (b *Builder) move(members []nfa.StateID, sym alphabet.Symbol) []nfa.StateID {
	var targets []nfa.StateID
	for _, id := range members {
		targets = append(targets, b.nfa.Step(id, sym)...)
	}
	if len(targets) == 0 {
		return nil
	}
	return b.nfa.Closure(targets...)
}

func (r *Row) set(sym alphabet.Symbol, s State) {
	switch sym {
	case alphabet.Zero:
		r.Zero = s
	case alphabet.One:
		r.One = s
	}
}

// ConvertNFA runs subset construction on n with the default configuration.
func ConvertNFA(n *nfa.NFA) (*Conversion, error) {
	return NewBuilder(n, DefaultBuildConfig()).Build()
}

// Convert compiles desc and returns the equivalent DFA description.
func Convert(desc nfa.Description) (Description, error) {
	return ConvertWithConfig(desc, DefaultBuildConfig())
}

// ConvertWithConfig is Convert with an explicit configuration.
func ConvertWithConfig(desc nfa.Description, config BuildConfig) (Description, error) {
	conv, err := NewBuilder(nfa.New(desc), config).Build()
	if err != nil {
		return Description{}, err
	}
	return conv.desc, nil
}
