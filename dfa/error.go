package dfa

import (
	"fmt"

	"github.com/coregx/automata/alphabet"
)

// ErrUndefinedTransition indicates a transition was requested from a state
// without a row while the engine runs under the Strict policy.
var ErrUndefinedTransition = &DFAError{
	Kind:    UndefinedTransition,
	Message: "undefined transition",
}

// ErrUndefinedState indicates a reachable state has no row in the table.
// Reported by Description.Validate.
var ErrUndefinedState = &DFAError{
	Kind:    UndefinedState,
	Message: "undefined state",
}

// ErrUnknownSymbol indicates a symbol other than 0 or 1 was fed to a DFA.
// The error itself is an *alphabet.SymbolError, as from the NFA engine.
var ErrUnknownSymbol = alphabet.ErrUnknownSymbol

// ErrStateLimitExceeded indicates subset construction discovered more
// composite states than BuildConfig.MaxStates allows.
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// UndefinedTransition indicates a lookup from a state without a row
	UndefinedTransition ErrorKind = iota

	// UndefinedState indicates a reachable state without a row
	UndefinedState

	// StateLimitExceeded indicates too many composite states were created
	StateLimitExceeded

	// InvalidConfig indicates configuration validation failed
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case UndefinedTransition:
		return "UndefinedTransition"
	case UndefinedState:
		return "UndefinedState"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA operations
type DFAError struct {
	Kind    ErrorKind
	Message string
	State   State // Offending state, if any
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	msg := e.Message
	if e.State != "" {
		msg = fmt.Sprintf("%s: state %q", msg, e.State)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func undefinedTransition(state State, sym alphabet.Symbol) error {
	return &DFAError{
		Kind:    UndefinedTransition,
		Message: fmt.Sprintf("undefined transition on %v", sym),
		State:   state,
	}
}

func unknownSymbol(sym alphabet.Symbol, offset int) error {
	return &alphabet.SymbolError{Text: sym.String(), Offset: offset}
}
