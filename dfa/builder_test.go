package dfa

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/internal/conv"
	"github.com/coregx/automata/internal/corpus"
	"github.com/coregx/automata/nfa"
)

const equivalenceDepth = 12

func convert(t *testing.T, desc nfa.Description) *Conversion {
	t.Helper()
	c, err := ConvertNFA(nfa.New(desc))
	if err != nil {
		t.Fatalf("ConvertNFA() unexpected error: %v", err)
	}
	return c
}

func TestConvertStartsWith0(t *testing.T) {
	c := convert(t, corpus.StartsWith0().NFA)
	desc := c.Description()

	if desc.Start != "S" {
		t.Errorf("Start = %q, want S", desc.Start)
	}
	if want := []State{"S", "A", DefaultDeadState}; !slices.Equal(c.States(), want) {
		t.Errorf("States() = %v, want %v", c.States(), want)
	}
	if got := desc.Transitions["S"]; got != (Row{Zero: "A", One: DefaultDeadState}) {
		t.Errorf("row S = %+v, want {A DEAD}", got)
	}
	if got := desc.Transitions[DefaultDeadState]; got != (Row{Zero: DefaultDeadState, One: DefaultDeadState}) {
		t.Errorf("dead row = %+v, want self loops", got)
	}
	if dead, used := c.DeadState(); !used || dead != DefaultDeadState {
		t.Errorf("DeadState() = %q, %v; want DEAD, true", dead, used)
	}

	// every accept state stands for a set containing A
	if len(desc.Accept) == 0 {
		t.Fatal("converted DFA has no accept states")
	}
	for _, s := range desc.Accept {
		members, ok := c.Members(s)
		if !ok || !slices.Contains(members, "A") {
			t.Errorf("Members(%q) = %v, want a set containing A", s, members)
		}
	}
	if members, ok := c.Members(DefaultDeadState); !ok || len(members) != 0 {
		t.Errorf("Members(DEAD) = %v, %v; want empty, true", members, ok)
	}
	if _, ok := c.Members("nowhere"); ok {
		t.Error("Members(nowhere) reported ok")
	}
}

func TestConvertSecondToLastIs1(t *testing.T) {
	c := convert(t, corpus.SecondToLastIs1().NFA)
	desc := c.Description()

	wantStates := []State{"A", "A,B", "A,C", "A,B,C"}
	if !slices.Equal(c.States(), wantStates) {
		t.Errorf("States() = %v, want %v", c.States(), wantStates)
	}
	if _, used := c.DeadState(); used {
		t.Error("no move result is empty, dead state should be unused")
	}
	wantAccept := []State{"A,C", "A,B,C"}
	if !slices.Equal(desc.Accept, wantAccept) {
		t.Errorf("Accept = %v, want %v", desc.Accept, wantAccept)
	}
	wantRows := map[State]Row{
		"A":     {Zero: "A", One: "A,B"},
		"A,B":   {Zero: "A,C", One: "A,B,C"},
		"A,C":   {Zero: "A", One: "A,B"},
		"A,B,C": {Zero: "A,C", One: "A,B,C"},
	}
	for s, want := range wantRows {
		if got := desc.Transitions[s]; got != want {
			t.Errorf("row %q = %+v, want %+v", s, got, want)
		}
	}
}

func TestConvertStartIsClosure(t *testing.T) {
	c := convert(t, corpus.EpsilonChain().NFA)
	desc := c.Description()
	if desc.Start != "1,2,3" {
		t.Errorf("Start = %q, want 1,2,3", desc.Start)
	}
	if !slices.Contains(desc.Accept, desc.Start) {
		t.Error("start closure contains accept state 3 but start is not accepting")
	}
}

func TestConvertEquivalence(t *testing.T) {
	for _, tc := range corpus.All() {
		t.Run(tc.Name, func(t *testing.T) {
			checkEquivalent(t, tc.NFA, equivalenceDepth)
		})
	}
}

func TestConvertTotality(t *testing.T) {
	for _, tc := range corpus.All() {
		t.Run(tc.Name, func(t *testing.T) {
			desc := convert(t, tc.NFA).Description()
			if err := desc.Validate(); err != nil {
				t.Fatalf("Validate() = %v, want total DFA", err)
			}
			for s, row := range desc.Transitions {
				for _, next := range []State{row.Zero, row.One} {
					if _, ok := desc.Transitions[next]; !ok {
						t.Errorf("row %q targets %q, which has no row", s, next)
					}
				}
			}
		})
	}
}

func TestConvertStateBound(t *testing.T) {
	for _, tc := range corpus.All() {
		t.Run(tc.Name, func(t *testing.T) {
			n := nfa.New(tc.NFA)
			c := convert(t, tc.NFA)
			composites := c.Len()
			if _, used := c.DeadState(); used {
				composites--
			}
			if bound := conv.Pow2Saturating(n.Len()); composites > bound {
				t.Errorf("%d composites for a %d-state NFA, bound %d", composites, n.Len(), bound)
			}
		})
	}
}

func TestConvertEmptyLanguage(t *testing.T) {
	c := convert(t, corpus.EmptyLanguage().NFA)
	desc := c.Description()
	if len(desc.Accept) != 0 {
		t.Errorf("Accept = %v, want none", desc.Accept)
	}
	if want := []State{"S", DefaultDeadState}; !slices.Equal(c.States(), want) {
		t.Errorf("States() = %v, want %v", c.States(), want)
	}
}

func TestConvertDoesNotMutateInput(t *testing.T) {
	desc := corpus.StartsWith0OrEndsWith1().NFA
	before := desc.Clone()
	if _, err := Convert(desc); err != nil {
		t.Fatal(err)
	}
	for s, m := range before.Transitions {
		got := desc.Transitions[s]
		if !slices.Equal(got.Zero, m.Zero) || !slices.Equal(got.One, m.One) || !slices.Equal(got.Epsilon, m.Epsilon) {
			t.Errorf("row %q changed from %+v to %+v", s, m, got)
		}
	}
}

// Equal sets reached in different insertion orders must become one state.
func TestConvertOrderIndependentIdentity(t *testing.T) {
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"S": {Zero: []nfa.State{"X", "Y"}, One: []nfa.State{"Y", "X", "Y"}},
			"X": {},
			"Y": {},
		},
		Start:  "S",
		Accept: []nfa.State{"Y"},
	}
	c := convert(t, desc)
	row := c.Description().Transitions["S"]
	if row.Zero != row.One || row.Zero != "X,Y" {
		t.Errorf("row S = %+v, want both symbols to reach X,Y", row)
	}
	if want := []State{"S", "X,Y", DefaultDeadState}; !slices.Equal(c.States(), want) {
		t.Errorf("States() = %v, want %v", c.States(), want)
	}
}

func TestComputeStateKey(t *testing.T) {
	a := ComputeStateKey([]nfa.StateID{1, 2, 3})
	b := ComputeStateKey([]nfa.StateID{3, 1, 2, 1})
	if a != b {
		t.Error("keys differ for the same set in a different order")
	}
	if a == ComputeStateKey([]nfa.StateID{1, 2}) {
		t.Error("keys collide for different sets")
	}
	// 256 and {0, 1} would collide under naive concatenation of bytes
	if ComputeStateKey([]nfa.StateID{256}) == ComputeStateKey([]nfa.StateID{0, 1}) {
		t.Error("keys collide for {256} and {0, 1}")
	}
	if ComputeStateKey(nil) != "" {
		t.Error("empty set should have the empty key")
	}
}

func TestConvertSeparatorInLabel(t *testing.T) {
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"S": {Zero: []nfa.State{"A", "B"}, One: []nfa.State{"A,B"}},
		},
		Start:  "S",
		Accept: []nfa.State{"A,B"},
	}
	c := convert(t, desc)
	out := c.Description()
	row := out.Transitions["S"]
	if row.Zero != "A,B" || row.One != "A,B'" {
		t.Errorf("row S = %+v, want {A,B A,B'}", row)
	}
	if m, _ := c.Members("A,B"); !slices.Equal(m, []nfa.State{"A", "B"}) {
		t.Errorf("Members(A,B) = %v, want [A B]", m)
	}
	if m, _ := c.Members("A,B'"); !slices.Equal(m, []nfa.State{"A,B"}) {
		t.Errorf("Members(A,B') = %v, want [A,B]", m)
	}
	if !slices.Equal(out.Accept, []State{"A,B'"}) {
		t.Errorf("Accept = %v, want [A,B']", out.Accept)
	}
	sameLanguage(t, desc, out, 6)

	out, err := ConvertWithConfig(desc, DefaultBuildConfig().WithSeparator("|"))
	if err != nil {
		t.Fatalf("ConvertWithConfig(sep=|) unexpected error: %v", err)
	}
	row = out.Transitions["S"]
	if row.Zero != "A|B" || row.One != "A,B" {
		t.Errorf("row S = %+v, want {A|B A,B}", row)
	}
}

func TestConvertSeparatorInLabelBothReached(t *testing.T) {
	// {a,b} and {"a,b"} both join to "a,b"
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"S":   {Zero: []nfa.State{"a", "b"}, One: []nfa.State{"a,b"}},
			"a":   {Zero: []nfa.State{"a"}, One: []nfa.State{"a"}},
			"b":   {Zero: []nfa.State{"b"}},
			"a,b": {Zero: []nfa.State{"a,b"}, One: []nfa.State{"S"}},
		},
		Start:  "S",
		Accept: []nfa.State{"b"},
	}
	c := convert(t, desc)
	out := c.Description()
	if err := out.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	seen := make(map[State]bool)
	for _, s := range c.States() {
		if seen[s] {
			t.Fatalf("state %q listed twice", s)
		}
		seen[s] = true
	}
	sameLanguage(t, desc, out, 9)
}

func TestConvertNFAStateNamedDead(t *testing.T) {
	// total NFA: no move is empty, so no dead state is needed
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"S":    {Zero: []nfa.State{"A"}, One: []nfa.State{"DEAD"}},
			"A":    {Zero: []nfa.State{"A"}, One: []nfa.State{"A"}},
			"DEAD": {Zero: []nfa.State{"DEAD"}, One: []nfa.State{"DEAD"}},
		},
		Start:  "S",
		Accept: []nfa.State{"A"},
	}
	c := convert(t, desc)
	if _, used := c.DeadState(); used {
		t.Error("DeadState() reports a dead state for a total NFA")
	}
	if want := []State{"S", "A", "DEAD"}; !slices.Equal(c.States(), want) {
		t.Errorf("States() = %v, want %v", c.States(), want)
	}
	if m, ok := c.Members("DEAD"); !ok || !slices.Equal(m, []nfa.State{"DEAD"}) {
		t.Errorf("Members(DEAD) = %v, %v; want [DEAD], true", m, ok)
	}
	sameLanguage(t, desc, c.Description(), 8)
}

func TestConvertDeadStateCollision(t *testing.T) {
	desc := nfa.Description{
		Transitions: map[nfa.State]nfa.Moves{
			"DEAD": {Zero: []nfa.State{"DEAD"}},
		},
		Start:  "DEAD",
		Accept: []nfa.State{"DEAD"},
	}
	c := convert(t, desc)
	out := c.Description()
	if got := out.Transitions["DEAD"]; got != (Row{Zero: "DEAD", One: "DEAD'"}) {
		t.Errorf("row DEAD = %+v, want {DEAD DEAD'}", got)
	}
	if got := out.Transitions["DEAD'"]; got != (Row{Zero: "DEAD'", One: "DEAD'"}) {
		t.Errorf("dead row = %+v, want self loops", got)
	}
	if dead, used := c.DeadState(); !used || dead != "DEAD'" {
		t.Errorf("DeadState() = %q, %v; want DEAD', true", dead, used)
	}
	if m, ok := c.Members("DEAD'"); !ok || m != nil {
		t.Errorf("Members(DEAD') = %v, %v; want nil, true", m, ok)
	}
	sameLanguage(t, desc, out, 6)

	out, err := ConvertWithConfig(desc, DefaultBuildConfig().WithDeadState("SINK"))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Transitions["DEAD"]; got != (Row{Zero: "DEAD", One: "SINK"}) {
		t.Errorf("row DEAD = %+v, want {DEAD SINK}", got)
	}
}

func TestConvertStateLimit(t *testing.T) {
	_, err := ConvertWithConfig(corpus.SecondToLastIs1().NFA, DefaultBuildConfig().WithMaxStates(2))
	if !errors.Is(err, ErrStateLimitExceeded) {
		t.Errorf("ConvertWithConfig(MaxStates=2) error = %v, want ErrStateLimitExceeded", err)
	}

	// the dead state does not count toward the limit
	if _, err := ConvertWithConfig(corpus.StartsWith0().NFA, DefaultBuildConfig().WithMaxStates(2)); err != nil {
		t.Errorf("ConvertWithConfig(MaxStates=2) on startsWith0 = %v, want nil", err)
	}
}

func TestBuildConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config BuildConfig
	}{
		{"zero max states", DefaultBuildConfig().WithMaxStates(0)},
		{"negative max states", DefaultBuildConfig().WithMaxStates(-3)},
		{"empty dead state", DefaultBuildConfig().WithDeadState("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertWithConfig(corpus.StartsWith0().NFA, tt.config)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// randomNFA builds a small NFA with a fixed seed so failures reproduce.
func randomNFA(r *rand.Rand, size int) nfa.Description {
	states := make([]nfa.State, size)
	for i := range states {
		states[i] = nfa.State(rune('a' + i))
	}
	pick := func() []nfa.State {
		var out []nfa.State
		for _, s := range states {
			if r.IntN(4) == 0 {
				out = append(out, s)
			}
		}
		return out
	}
	desc := nfa.Description{
		Transitions: make(map[nfa.State]nfa.Moves, size),
		Start:       states[0],
	}
	for _, s := range states {
		// leave some rows out to exercise absent states
		if r.IntN(6) == 0 {
			continue
		}
		m := nfa.Moves{Zero: pick(), One: pick()}
		if r.IntN(3) == 0 {
			m.Epsilon = pick()
		}
		desc.Transitions[s] = m
		if r.IntN(3) == 0 {
			desc.Accept = append(desc.Accept, s)
		}
	}
	return desc
}

func TestConvertRandomEquivalence(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 40; i++ {
		desc := randomNFA(r, 2+r.IntN(5))
		checkEquivalent(t, desc, 9)
	}
}

func checkEquivalent(t *testing.T, desc nfa.Description, depth int) {
	t.Helper()
	out, err := Convert(desc)
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	sameLanguage(t, desc, out, depth)
}

// sameLanguage checks that out accepts exactly what the NFA accepts on every
// input up to depth.
func sameLanguage(t *testing.T, desc nfa.Description, out Description, depth int) {
	t.Helper()
	n := nfa.New(desc)
	d, err := New(out)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	for s := range alphabet.Strings(depth) {
		want, err := n.Accept(s)
		if err != nil {
			t.Fatal(err)
		}
		got, err := d.Accept(s)
		if err != nil {
			t.Fatalf("converted DFA Accept(%q) error: %v", s, err)
		}
		if got != want {
			t.Fatalf("converted DFA Accept(%q) = %v, NFA says %v (nfa %+v)", s, got, want, desc)
		}
	}
}
