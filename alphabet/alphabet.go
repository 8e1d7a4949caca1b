// Package alphabet defines the input symbols shared by the NFA and DFA
// engines.
//
// The input alphabet is exactly {0, 1}. Nondeterministic transition tables
// additionally use Epsilon for moves that consume no input; Epsilon is never
// a valid input symbol.
package alphabet

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Symbol is a transition label.
type Symbol uint8

const (
	// Zero is the input symbol '0'.
	Zero Symbol = iota

	// One is the input symbol '1'.
	One

	// Epsilon labels a move that consumes no input (NFA tables only).
	Epsilon
)

// Inputs lists the input symbols in table order.
var Inputs = [...]Symbol{Zero, One}

// String returns the symbol as written in descriptions.
func (s Symbol) String() string {
	switch s {
	case Zero:
		return "0"
	case One:
		return "1"
	case Epsilon:
		return "eps"
	default:
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
}

// IsInput reports whether s may appear in an input string.
func (s Symbol) IsInput() bool {
	return s == Zero || s == One
}

// Valid reports whether s is one of Zero, One or Epsilon.
func (s Symbol) Valid() bool {
	return s <= Epsilon
}

// ErrUnknownSymbol is matched by every SymbolError via errors.Is.
var ErrUnknownSymbol = errors.New("unknown symbol")

// SymbolError reports a symbol outside the alphabet.
type SymbolError struct {
	// Text is the offending symbol as written.
	Text string

	// Offset is the byte offset in the input string, or -1 when the symbol
	// did not come from an input string.
	Offset int
}

// Error implements the error interface
func (e *SymbolError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("unknown symbol %q at offset %d", e.Text, e.Offset)
	}
	return fmt.Sprintf("unknown symbol %q", e.Text)
}

// Is makes errors.Is(err, ErrUnknownSymbol) succeed.
func (e *SymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// Check returns a SymbolError if s is not Zero, One or Epsilon.
func Check(s Symbol) error {
	if !s.Valid() {
		return &SymbolError{Text: s.String(), Offset: -1}
	}
	return nil
}

// Parse converts a written symbol into a Symbol.
// "eps", "lambda" and "ε" all denote Epsilon.
func Parse(text string) (Symbol, error) {
	switch text {
	case "0":
		return Zero, nil
	case "1":
		return One, nil
	case "eps", "lambda", "ε":
		return Epsilon, nil
	}
	return 0, &SymbolError{Text: text, Offset: -1}
}

// ParseInput converts an input string such as "0110" into symbols.
// Any rune other than '0' or '1' fails with a SymbolError.
func ParseInput(input string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(input))
	for i, r := range input {
		switch r {
		case '0':
			out = append(out, Zero)
		case '1':
			out = append(out, One)
		default:
			return nil, &SymbolError{Text: string(r), Offset: i}
		}
	}
	return out, nil
}

// Format renders input symbols back into a string.
// Epsilon and invalid symbols are written using their String form.
func Format(input []Symbol) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, s := range input {
		b.WriteString(s.String())
	}
	return b.String()
}

// Strings yields every input string of length 0 through maxLen, shortest
// first and in lexicographic order within a length.
func Strings(maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		buf := make([]byte, 0, max(maxLen, 0))
		for n := 0; n <= maxLen; n++ {
			buf = buf[:n]
			for i := range buf {
				buf[i] = '0'
			}
			for {
				if !yield(string(buf)) {
					return
				}
				// binary increment from the right
				i := n - 1
				for i >= 0 && buf[i] == '1' {
					buf[i] = '0'
					i--
				}
				if i < 0 {
					break
				}
				buf[i] = '1'
			}
		}
	}
}
