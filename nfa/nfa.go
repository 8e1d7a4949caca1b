package nfa

import (
	"fmt"
	"slices"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/internal/conv"
)

// State is an opaque state label. Equality is by value.
type State string

// StateID is the dense index of a state inside a compiled NFA.
// IDs follow the lexicographic order of the state labels, so sorting IDs
// sorts labels.
type StateID uint32

// InvalidState is returned by ID lookups for labels the NFA does not know.
const InvalidState StateID = 0xFFFFFFFF

// Moves holds the outgoing transitions of one state.
// Duplicated targets are tolerated; the engine deduplicates them.
type Moves struct {
	Zero    []State
	One     []State
	Epsilon []State
}

// On returns the targets recorded for sym, or nil for unknown symbols.
func (m Moves) On(sym alphabet.Symbol) []State {
	switch sym {
	case alphabet.Zero:
		return m.Zero
	case alphabet.One:
		return m.One
	case alphabet.Epsilon:
		return m.Epsilon
	}
	return nil
}

// Description is the declarative form of an NFA.
//
// A state named by Start, Accept or any transition but missing from
// Transitions has no outgoing edges.
type Description struct {
	Transitions map[State]Moves
	Start       State
	Accept      []State
}

// Clone returns a deep copy of d.
func (d Description) Clone() Description {
	out := Description{
		Transitions: make(map[State]Moves, len(d.Transitions)),
		Start:       d.Start,
		Accept:      slices.Clone(d.Accept),
	}
	for s, m := range d.Transitions {
		out.Transitions[s] = Moves{
			Zero:    slices.Clone(m.Zero),
			One:     slices.Clone(m.One),
			Epsilon: slices.Clone(m.Epsilon),
		}
	}
	return out
}

// labels returns every state d mentions, sorted and deduplicated.
func (d Description) labels() []State {
	seen := make(map[State]struct{}, len(d.Transitions)+1)
	add := func(s State) { seen[s] = struct{}{} }

	add(d.Start)
	for _, s := range d.Accept {
		add(s)
	}
	for s, m := range d.Transitions {
		add(s)
		for _, sym := range [...]alphabet.Symbol{alphabet.Zero, alphabet.One, alphabet.Epsilon} {
			for _, t := range m.On(sym) {
				add(t)
			}
		}
	}

	out := make([]State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// NFA is a nondeterministic finite automaton over {0, 1} with epsilon
// moves, compiled from a Description.
//
// An NFA is immutable after New and safe for concurrent use.
type NFA struct {
	desc Description

	// labels[id] is the label of state id; ids is the inverse map
	labels []State
	ids    map[State]StateID

	// next[id][sym] lists the deduplicated one-hop successors, sorted by ID
	next [][3][]StateID

	accept []bool
	start  StateID
}

// New compiles desc. The description is copied; later changes to it do not
// affect the NFA.
func New(desc Description) *NFA {
	desc = desc.Clone()
	labels := desc.labels()

	n := &NFA{
		desc:   desc,
		labels: labels,
		ids:    make(map[State]StateID, len(labels)),
		next:   make([][3][]StateID, len(labels)),
		accept: make([]bool, len(labels)),
	}
	for i, s := range labels {
		n.ids[s] = StateID(conv.IntToUint32(i))
	}
	n.start = n.ids[desc.Start]
	for _, s := range desc.Accept {
		n.accept[n.ids[s]] = true
	}

	for s, m := range desc.Transitions {
		id := n.ids[s]
		for _, sym := range [...]alphabet.Symbol{alphabet.Zero, alphabet.One, alphabet.Epsilon} {
			targets := m.On(sym)
			if len(targets) == 0 {
				continue
			}
			ts := make([]StateID, 0, len(targets))
			for _, t := range targets {
				ts = append(ts, n.ids[t])
			}
			slices.Sort(ts)
			n.next[id][sym] = slices.Compact(ts)
		}
	}
	return n
}

// Description returns a copy of the description the NFA was built from.
func (n *NFA) Description() Description {
	return n.desc.Clone()
}

// Start returns the start state label.
func (n *NFA) Start() State {
	return n.desc.Start
}

// StartID returns the ID of the start state.
func (n *NFA) StartID() StateID {
	return n.start
}

// Len returns the number of distinct states the description mentions.
func (n *NFA) Len() int {
	return len(n.labels)
}

// States returns every state label, sorted.
func (n *NFA) States() []State {
	return slices.Clone(n.labels)
}

// ID returns the dense ID of a state label, or InvalidState.
func (n *NFA) ID(s State) StateID {
	id, ok := n.ids[s]
	if !ok {
		return InvalidState
	}
	return id
}

// Label returns the label of id. Panics if id is out of range.
func (n *NFA) Label(id StateID) State {
	return n.labels[id]
}

// IsAccept reports whether s is an accept state.
func (n *NFA) IsAccept(s State) bool {
	id, ok := n.ids[s]
	return ok && n.accept[id]
}

// IsAcceptID reports whether state id is an accept state.
func (n *NFA) IsAcceptID(id StateID) bool {
	return int(id) < len(n.accept) && n.accept[id]
}

// Step returns the one-hop successors of id on sym, sorted by ID.
// The returned slice must not be modified.
func (n *NFA) Step(id StateID, sym alphabet.Symbol) []StateID {
	if int(id) >= len(n.next) || !sym.Valid() {
		return nil
	}
	return n.next[id][sym]
}

// Transition returns the states reachable from state in exactly one move on
// sym. For Epsilon this is a single hop, not the closure. A state without a
// row has no moves and yields an empty set.
func (n *NFA) Transition(state State, sym alphabet.Symbol) ([]State, error) {
	if err := alphabet.Check(sym); err != nil {
		return nil, err
	}
	id, ok := n.ids[state]
	if !ok {
		return nil, nil
	}
	return n.labelsOf(n.next[id][sym]), nil
}

// EpsilonClosure returns every state reachable from state through zero or
// more epsilon moves. The closure is reflexive: state is always a member.
// The result is sorted.
func (n *NFA) EpsilonClosure(state State) []State {
	id, ok := n.ids[state]
	if !ok {
		return []State{state}
	}
	return n.labelsOf(n.Closure(id))
}

// Closure returns the reflexive epsilon-closure of the seed IDs as a sorted
// slice of IDs. Seeds outside the NFA are ignored.
func (n *NFA) Closure(seeds ...StateID) []StateID {
	sim := n.newSimulation()
	for _, id := range seeds {
		if int(id) < len(n.labels) {
			sim.addClosure(sim.cur, id)
		}
	}
	return toStateIDs(sim.cur.Sorted())
}

func (n *NFA) labelsOf(ids []StateID) []State {
	if len(ids) == 0 {
		return nil
	}
	out := make([]State, len(ids))
	for i, id := range ids {
		out[i] = n.labels[id]
	}
	return out
}

// String returns a short summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %q, accept: %v}", len(n.labels), n.desc.Start, n.desc.Accept)
}

func toStateIDs(vs []uint32) []StateID {
	out := make([]StateID, len(vs))
	for i, v := range vs {
		out[i] = StateID(v)
	}
	return out
}
