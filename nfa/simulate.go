package nfa

import (
	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/internal/conv"
	"github.com/coregx/automata/internal/sparse"
)

// simulation holds the scratch space for one acceptance run.
//
// cur and next are swapped after every symbol so no set is reallocated
// during the run. Each run gets its own simulation, which keeps the NFA
// itself free of mutable state.
type simulation struct {
	nfa   *NFA
	cur   *sparse.SparseSet
	next  *sparse.SparseSet
	stack []StateID
}

func (n *NFA) newSimulation() *simulation {
	size := conv.IntToUint32(len(n.labels))
	return &simulation{
		nfa:   n,
		cur:   sparse.NewSparseSet(size),
		next:  sparse.NewSparseSet(size),
		stack: make([]StateID, 0, 16),
	}
}

// addClosure inserts id and everything epsilon-reachable from it into set.
//
// set doubles as the visited set: once a state is a member, its closure is
// already a member too, so that branch of the walk stops there. This also
// terminates on epsilon cycles.
func (s *simulation) addClosure(set *sparse.SparseSet, id StateID) {
	if !set.Insert(uint32(id)) {
		return
	}
	s.stack = append(s.stack[:0], id)
	for len(s.stack) > 0 {
		cur := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		for _, t := range s.nfa.next[cur][alphabet.Epsilon] {
			if set.Insert(uint32(t)) {
				s.stack = append(s.stack, t)
			}
		}
	}
}

// step replaces cur with the closure of its one-hop successors on sym.
func (s *simulation) step(sym alphabet.Symbol) {
	s.next.Clear()
	for _, v := range s.cur.Values() {
		for _, t := range s.nfa.next[v][sym] {
			s.addClosure(s.next, t)
		}
	}
	s.cur, s.next = s.next, s.cur
}

func (s *simulation) accepting() bool {
	for _, v := range s.cur.Values() {
		if s.nfa.accept[v] {
			return true
		}
	}
	return false
}

// Accept reports whether the NFA accepts input, a string over '0' and '1'.
// Any other rune fails with an alphabet.SymbolError.
func (n *NFA) Accept(input string) (bool, error) {
	syms, err := alphabet.ParseInput(input)
	if err != nil {
		return false, err
	}
	return n.run(syms), nil
}

// AcceptSymbols is Accept over pre-parsed symbols. Epsilon is not an input
// symbol and fails with an alphabet.SymbolError.
func (n *NFA) AcceptSymbols(input []alphabet.Symbol) (bool, error) {
	for i, sym := range input {
		if !sym.IsInput() {
			return false, &alphabet.SymbolError{Text: sym.String(), Offset: i}
		}
	}
	return n.run(input), nil
}

// Run returns the set of states active after consuming input, sorted.
// It is the state set Accept inspects.
func (n *NFA) Run(input string) ([]State, error) {
	syms, err := alphabet.ParseInput(input)
	if err != nil {
		return nil, err
	}
	sim := n.simulate(syms)
	return n.labelsOf(toStateIDs(sim.cur.Sorted())), nil
}

func (n *NFA) run(input []alphabet.Symbol) bool {
	return n.simulate(input).accepting()
}

func (n *NFA) simulate(input []alphabet.Symbol) *simulation {
	sim := n.newSimulation()
	sim.addClosure(sim.cur, n.start)
	for _, sym := range input {
		if sim.cur.IsEmpty() {
			break
		}
		sim.step(sym)
	}
	return sim
}
