// Package nfa implements a nondeterministic finite automaton over the binary
// alphabet {0, 1} with epsilon moves.
//
// An NFA is compiled from a declarative Description. Acceptance is decided
// by tracking every reachable state in parallel: the current state set starts
// as the epsilon-closure of the start state and, for each input symbol, is
// replaced by the epsilon-closure of the one-hop successors of its members.
package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/automata/alphabet"
)

// ErrUnknownSymbol is matched by the *alphabet.SymbolError that Transition,
// Accept, AcceptSymbols and Run return for symbols outside the alphabet.
// The DFA engine reports bad symbols the same way.
var ErrUnknownSymbol = alphabet.ErrUnknownSymbol

// ErrNoStart indicates a Builder was asked to build without a start state.
var ErrNoStart = errors.New("NFA description has no start state")

// BuildError represents misuse of the Builder API
type BuildError struct {
	Message string
	State   State
	Cause   error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	msg := "NFA build error: " + e.Message
	if e.State != "" {
		msg = fmt.Sprintf("NFA build error at state %q: %s", e.State, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Cause
}
