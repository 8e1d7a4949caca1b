package nfa

import (
	"github.com/coregx/automata/alphabet"
)

// Builder assembles a Description incrementally.
//
// The first misuse is recorded and reported by Build; later calls are
// ignored once an error has been recorded.
type Builder struct {
	transitions map[State]*Moves
	start       State
	hasStart    bool
	accept      []State
	err         error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		transitions: make(map[State]*Moves),
	}
}

// Start sets the start state and declares it.
func (b *Builder) Start(s State) *Builder {
	if b.err != nil {
		return b
	}
	b.start = s
	b.hasStart = true
	b.row(s)
	return b
}

// Accept marks states as accepting and declares them.
func (b *Builder) Accept(states ...State) *Builder {
	if b.err != nil {
		return b
	}
	for _, s := range states {
		b.accept = append(b.accept, s)
		b.row(s)
	}
	return b
}

// State declares s with no outgoing moves.
func (b *Builder) State(s State) *Builder {
	if b.err == nil {
		b.row(s)
	}
	return b
}

// Add records moves from `from` to each of `to` on sym.
// Targets are declared as states as well.
func (b *Builder) Add(from State, sym alphabet.Symbol, to ...State) *Builder {
	if b.err != nil {
		return b
	}
	if err := alphabet.Check(sym); err != nil {
		b.err = &BuildError{Message: "invalid transition symbol", State: from, Cause: err}
		return b
	}
	m := b.row(from)
	switch sym {
	case alphabet.Zero:
		m.Zero = append(m.Zero, to...)
	case alphabet.One:
		m.One = append(m.One, to...)
	case alphabet.Epsilon:
		m.Epsilon = append(m.Epsilon, to...)
	}
	for _, t := range to {
		b.row(t)
	}
	return b
}

// Epsilon is shorthand for Add(from, alphabet.Epsilon, to...).
func (b *Builder) Epsilon(from State, to ...State) *Builder {
	return b.Add(from, alphabet.Epsilon, to...)
}

func (b *Builder) row(s State) *Moves {
	m, ok := b.transitions[s]
	if !ok {
		m = &Moves{}
		b.transitions[s] = m
	}
	return m
}

// Build returns the assembled Description.
// Fails with ErrNoStart if Start was never called.
func (b *Builder) Build() (Description, error) {
	if b.err != nil {
		return Description{}, b.err
	}
	if !b.hasStart {
		return Description{}, ErrNoStart
	}
	desc := Description{
		Transitions: make(map[State]Moves, len(b.transitions)),
		Start:       b.start,
	}
	desc.Accept = append(desc.Accept, b.accept...)
	for s, m := range b.transitions {
		desc.Transitions[s] = *m
	}
	return desc.Clone(), nil
}

// MustBuild is like Build but panics on error.
// It simplifies static descriptions in tests and examples.
func (b *Builder) MustBuild() Description {
	desc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return desc
}
