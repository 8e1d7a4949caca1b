// Package corpus holds reference automata with known languages, shared by
// the tests of the engine packages.
package corpus

import (
	"github.com/coregx/automata/nfa"
)

// Case is an NFA together with strings it must accept and reject.
type Case struct {
	Name     string
	NFA      nfa.Description
	Accepted []string
	Rejected []string
}

// StartsWith0 accepts strings whose first symbol is 0.
func StartsWith0() Case {
	return Case{
		Name: "startsWith0",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"S": {Zero: []nfa.State{"A"}},
				"A": {Zero: []nfa.State{"A"}, One: []nfa.State{"A"}},
			},
			Start:  "S",
			Accept: []nfa.State{"A"},
		},
		Accepted: []string{"0", "0111", "00", "01010"},
		Rejected: []string{"", "1", "10", "1111"},
	}
}

// StartsWith0OrEndsWith1 branches from the start state into two
// sub-machines with epsilon moves.
func StartsWith0OrEndsWith1() Case {
	return Case{
		Name: "startsWith0OrEndsWith1",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"S": {Epsilon: []nfa.State{"A", "C"}},
				"A": {Zero: []nfa.State{"A"}, One: []nfa.State{"A", "B"}},
				"B": {},
				"C": {Zero: []nfa.State{"D"}},
				"D": {Zero: []nfa.State{"D"}, One: []nfa.State{"D"}},
			},
			Start:  "S",
			Accept: []nfa.State{"B", "D"},
		},
		Accepted: []string{"0", "11", "0000", "011111"},
		Rejected: []string{"", "10", "100", "1100", "1011110"},
	}
}

// DivBy3 reads the input as a binary number and accepts multiples of 3.
// The empty string is read as 0.
func DivBy3() Case {
	return Case{
		Name: "divBy3",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"r0": {Zero: []nfa.State{"r0"}, One: []nfa.State{"r1"}},
				"r1": {Zero: []nfa.State{"r2"}, One: []nfa.State{"r0"}},
				"r2": {Zero: []nfa.State{"r1"}, One: []nfa.State{"r2"}},
			},
			Start:  "r0",
			Accept: []nfa.State{"r0"},
		},
		Accepted: []string{"", "0", "11", "0000", "1001", "101001101"},
		Rejected: []string{"10", "100", "1000", "1", "101"},
	}
}

// StartsWith0AndEndsWith1 mixes an epsilon branch with a direct path.
func StartsWith0AndEndsWith1() Case {
	return Case{
		Name: "startsWith0AndEndsWith1",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"S": {Zero: []nfa.State{"A"}},
				"A": {One: []nfa.State{"D"}, Epsilon: []nfa.State{"B"}},
				"B": {Zero: []nfa.State{"B"}, One: []nfa.State{"B", "C"}},
				"C": {},
				"D": {},
			},
			Start:  "S",
			Accept: []nfa.State{"C", "D"},
		},
		Accepted: []string{
			"01",
			"0101010101",
			"0001",
			"0001111111",
			"01100100100000010101010001010100101001",
		},
		Rejected: []string{"", "100", "1", "00", "110"},
	}
}

// EmptyLanguage has a start state without moves and an unreachable accept
// state, so it accepts nothing.
func EmptyLanguage() Case {
	return Case{
		Name: "emptyLanguage",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"S": {},
				"F": {Zero: []nfa.State{"F"}, One: []nfa.State{"F"}},
			},
			Start:  "S",
			Accept: []nfa.State{"F"},
		},
		Rejected: []string{"", "0", "1", "01", "1101"},
	}
}

// EpsilonChain has an epsilon cycle back to the start state and a target
// set that only overlaps after closure.
func EpsilonChain() Case {
	return Case{
		Name: "epsilonChain",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"1": {Zero: []nfa.State{"2"}, Epsilon: []nfa.State{"3"}},
				"2": {One: []nfa.State{"2", "4"}},
				"3": {Zero: []nfa.State{"4"}, Epsilon: []nfa.State{"2"}},
				"4": {Zero: []nfa.State{"3"}},
			},
			Start:  "1",
			Accept: []nfa.State{"3", "4"},
		},
		Accepted: []string{"", "0", "1", "00", "01", "000", "0011"},
		Rejected: []string{"0001", "1001", "00010"},
	}
}

// EndsWith01 accepts strings ending in 01.
func EndsWith01() Case {
	return Case{
		Name: "endsWith01",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"A": {Zero: []nfa.State{"A", "B"}, One: []nfa.State{"A"}},
				"B": {One: []nfa.State{"C"}},
				"C": {},
			},
			Start:  "A",
			Accept: []nfa.State{"C"},
		},
		Accepted: []string{"01", "001", "1101", "010101"},
		Rejected: []string{"", "0", "1", "10", "011", "0110"},
	}
}

// SecondToLastIs1 is the classic machine whose DFA needs 4 reachable states.
func SecondToLastIs1() Case {
	return Case{
		Name: "secondToLastIs1",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"A": {Zero: []nfa.State{"A"}, One: []nfa.State{"A", "B"}},
				"B": {Zero: []nfa.State{"C"}, One: []nfa.State{"C"}},
				"C": {},
			},
			Start:  "A",
			Accept: []nfa.State{"C"},
		},
		Accepted: []string{"10", "11", "010", "0011", "111"},
		Rejected: []string{"", "0", "1", "00", "01", "101", "1001"},
	}
}

// EpsilonCycle loops epsilon moves through three states, one of which
// accepts after a single 1.
func EpsilonCycle() Case {
	return Case{
		Name: "epsilonCycle",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"p": {Epsilon: []nfa.State{"q"}},
				"q": {Epsilon: []nfa.State{"r", "q"}},
				"r": {Epsilon: []nfa.State{"p"}, One: []nfa.State{"s"}},
				"s": {Zero: []nfa.State{"p"}},
			},
			Start:  "p",
			Accept: []nfa.State{"s"},
		},
		Accepted: []string{"1", "101", "10101"},
		Rejected: []string{"", "0", "11", "10", "1011"},
	}
}

// Sparse refers to states that have no row in the table at all.
func Sparse() Case {
	return Case{
		Name: "sparse",
		NFA: nfa.Description{
			Transitions: map[nfa.State]nfa.Moves{
				"S": {Zero: []nfa.State{"X"}, One: []nfa.State{"S", "S"}, Epsilon: []nfa.State{"Y"}},
			},
			Start:  "S",
			Accept: []nfa.State{"X"},
		},
		Accepted: []string{"0", "10", "1110"},
		Rejected: []string{"", "1", "00", "01"},
	}
}

// All returns every reference case.
func All() []Case {
	return []Case{
		StartsWith0(),
		StartsWith0OrEndsWith1(),
		DivBy3(),
		StartsWith0AndEndsWith1(),
		EmptyLanguage(),
		EpsilonChain(),
		EndsWith01(),
		SecondToLastIs1(),
		EpsilonCycle(),
		Sparse(),
	}
}
