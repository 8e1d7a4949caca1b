package automata_test

import (
	"fmt"
	"os"

	"github.com/coregx/automata"
	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/format"
	"github.com/coregx/automata/nfa"
)

// ExampleConvertNFA converts an NFA and runs both machines.
func ExampleConvertNFA() {
	desc := nfa.NewBuilder().
		Start("S").
		Accept("A").
		Add("S", alphabet.Zero, "A").
		Add("A", alphabet.Zero, "A").
		Add("A", alphabet.One, "A").
		MustBuild()

	d, err := automata.ConvertNFA(desc)
	if err != nil {
		panic(err)
	}
	ok, _ := d.Accept("0111")
	fmt.Println(ok)
	// Output: true
}

// Example_epsilonClosure shows that a closure contains its seed state.
func Example_epsilonClosure() {
	n := nfa.New(nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"S": {Epsilon: []nfa.State{"A", "C"}},
		},
		Start: "S",
	})
	fmt.Println(n.EpsilonClosure("S"))
	// Output: [A C S]
}

// Example_printConverted prints a converted DFA in the text format.
func Example_printConverted() {
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"A": {Zero: []nfa.State{"A", "B"}, One: []nfa.State{"A"}},
			"B": {One: []nfa.State{"C"}},
		},
		Start:  "A",
		Accept: []nfa.State{"C"},
	}
	out, err := dfa.Convert(desc)
	if err != nil {
		panic(err)
	}
	if err := format.WriteDFA(os.Stdout, "endsWith01", out); err != nil {
		panic(err)
	}
	// Output:
	// dfa endsWith01 {
	//   start A
	//   accept ["A,C"]
	//   A 0 -> "A,B"
	//   A 1 -> A
	//   "A,B" 0 -> "A,B"
	//   "A,B" 1 -> "A,C"
	//   "A,C" 0 -> "A,B"
	//   "A,C" 1 -> A
	// }
}

// ExampleEquivalent checks two machines against each other.
func ExampleEquivalent() {
	ms, err := automata.Load(`
nfa a { start S accept [A] S 0 -> A A 0 -> A A 1 -> A }
dfa b { start S accept [A] S 0 -> A S 1 -> B A 0 -> A A 1 -> A B 0 -> B B 1 -> B }
`)
	if err != nil {
		panic(err)
	}
	ok, err := automata.Equivalent(ms["a"], ms["b"], 10)
	fmt.Println(ok, err)
	// Output: true <nil>
}
