package format

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/automata/alphabet"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/internal/corpus"
	"github.com/coregx/automata/nfa"
)

const sample = `
# lambda-branching from the start state
nfa startsWith0OrEndsWith1 {
  start S
  accept [B, D]
  S eps -> [A, C]
  A 0 -> A
  A 1 -> [A, B]
  C 0 -> D
  D 0 -> D
  D 1 -> D
}

nfa lambdaTest {
  start 1
  accept [3, 4]
  1 0 -> 2
  1 lambda -> 3
  2 1 -> [2, 4]
  3 0 -> 4
  3 lambda -> 2
  4 0 -> 3
}

dfa startsWith0 {
  start S
  accept [A]
  S 0 -> A
  S 1 -> B
  A 0 -> A
  A 1 -> A
  B 0 -> B
  B 1 -> B
}
`

func TestParseSample(t *testing.T) {
	f, err := Parse("sample.fa", sample)
	require.NoError(t, err)
	assert.Equal(t, []string{"startsWith0OrEndsWith1", "lambdaTest", "startsWith0"}, f.Names())

	desc, err := f.NFA("startsWith0OrEndsWith1")
	require.NoError(t, err)
	assert.Equal(t, nfa.State("S"), desc.Start)
	assert.ElementsMatch(t, []nfa.State{"B", "D"}, desc.Accept)
	assert.Equal(t, []nfa.State{"A", "C"}, desc.Transitions["S"].Epsilon)
	assert.Equal(t, []nfa.State{"A", "B"}, desc.Transitions["A"].One)

	tc := corpus.StartsWith0OrEndsWith1()
	n := nfa.New(desc)
	for _, s := range tc.Accepted {
		ok, err := n.Accept(s)
		require.NoError(t, err)
		assert.True(t, ok, "accept %q", s)
	}
	for _, s := range tc.Rejected {
		ok, err := n.Accept(s)
		require.NoError(t, err)
		assert.False(t, ok, "reject %q", s)
	}
}

func TestParseIntegerStates(t *testing.T) {
	f, err := Parse("sample.fa", sample)
	require.NoError(t, err)
	desc, err := f.NFA("lambdaTest")
	require.NoError(t, err)

	want := nfa.New(corpus.EpsilonChain().NFA)
	got := nfa.New(desc)
	for s := range alphabet.Strings(8) {
		a, _ := want.Accept(s)
		b, _ := got.Accept(s)
		assert.Equal(t, a, b, "input %q", s)
	}
}

func TestParseDFA(t *testing.T) {
	f, err := Parse("sample.fa", sample)
	require.NoError(t, err)
	desc, err := f.DFA("startsWith0")
	require.NoError(t, err)
	assert.Equal(t, dfa.Row{Zero: "A", One: "B"}, desc.Transitions["S"])
	assert.NoError(t, desc.Validate())

	_, err = f.DFA("startsWith0OrEndsWith1")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "startsWith0OrEndsWith1", pe.Machine)

	_, err = f.NFA("startsWith0")
	assert.ErrorAs(t, err, &pe)

	_, err = f.NFA("missing")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"no start", "nfa m { accept [A] A 0 -> A }", KindNFA},
		{"two starts", "nfa m { start A start B }", KindNFA},
		{"dfa epsilon", "dfa m { start A A eps -> A }", KindDFA},
		{"dfa two targets", "dfa m { start A A 0 -> [A, B] A 1 -> A }", KindDFA},
		{"dfa repeated move", "dfa m { start A A 0 -> A A 0 -> A A 1 -> A }", KindDFA},
		{"dfa missing move", "dfa m { start A A 0 -> A }", KindDFA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse("bad.fa", tt.src)
			require.NoError(t, err)
			if tt.kind == KindNFA {
				_, err = f.NFA("m")
			} else {
				_, err = f.DFA("m")
			}
			var pe *ParseError
			require.ErrorAs(t, err, &pe, "got %v", err)
			assert.Equal(t, "m", pe.Machine)
			assert.Contains(t, err.Error(), "bad.fa:")
		})
	}
}

func TestParseStartOnly(t *testing.T) {
	f, err := Parse("x.fa", "nfa m { start A accept [] }")
	require.NoError(t, err)
	desc, err := f.NFA("m")
	require.NoError(t, err)
	assert.Equal(t, nfa.State("A"), desc.Start)
	assert.Empty(t, desc.Accept)

	ok, err := nfa.New(desc).Accept("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, src := range []string{
		"nfa { start A }",
		"nfa m { start A A 2 -> A }",
		"nfa m { start A A 0 A }",
		"fsm m { start A }",
		"nfa m { start A } nfa m { start B }",
	} {
		_, err := Parse("bad.fa", src)
		assert.Error(t, err, "source %q", src)
	}
}

func TestQuotedStates(t *testing.T) {
	src := `nfa "my machine" { start "start" accept ["a,b"] "start" 0 -> "a,b" "a,b" eps -> "eps" }`
	f, err := Parse("q.fa", src)
	require.NoError(t, err)
	desc, err := f.NFA("my machine")
	require.NoError(t, err)
	assert.Equal(t, nfa.State("start"), desc.Start)
	assert.Equal(t, []nfa.State{"a,b"}, desc.Transitions["start"].Zero)
	assert.Equal(t, []nfa.State{"eps"}, desc.Transitions["a,b"].Epsilon)
}

func TestWriteNFARoundTrip(t *testing.T) {
	for _, tc := range corpus.All() {
		t.Run(tc.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteNFA(&buf, tc.Name, tc.NFA))

			f, err := Parse(tc.Name+".fa", buf.String())
			require.NoError(t, err, buf.String())
			desc, err := f.NFA(tc.Name)
			require.NoError(t, err)

			want := nfa.New(tc.NFA)
			got := nfa.New(desc)
			for s := range alphabet.Strings(8) {
				a, _ := want.Accept(s)
				b, _ := got.Accept(s)
				require.Equal(t, a, b, "input %q after round trip:\n%s", s, buf.String())
			}
		})
	}
}

func TestWriteDFAConverted(t *testing.T) {
	conv, err := dfa.Convert(corpus.EpsilonChain().NFA)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDFA(&buf, "converted", conv))
	out := buf.String()
	// composite labels contain the separator and must be quoted
	assert.Contains(t, out, `start "1,2,3"`)
	assert.Contains(t, out, "DEAD 0 -> DEAD")

	f, err := Parse("converted.fa", out)
	require.NoError(t, err, out)
	desc, err := f.DFA("converted")
	require.NoError(t, err)
	assert.Equal(t, conv.Transitions, desc.Transitions)
	assert.ElementsMatch(t, conv.Accept, desc.Accept)
	assert.Equal(t, conv.Start, desc.Start)
}

func TestWriteIsDeterministic(t *testing.T) {
	tc := corpus.StartsWith0OrEndsWith1()
	var a, b bytes.Buffer
	require.NoError(t, WriteNFA(&a, "x", tc.NFA))
	require.NoError(t, WriteNFA(&b, "x", tc.NFA.Clone()))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "S eps -> [A, C]")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.fa")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	f, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Machines, 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}
