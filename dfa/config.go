package dfa

import "fmt"

// Policy selects how the engine treats states without a row.
type Policy uint8

const (
	// Strict fails a transition from a state without a row with
	// ErrUndefinedTransition.
	Strict Policy = iota

	// Sink routes states without a row to the dead state, which loops to
	// itself on every symbol and never accepts.
	Sink
)

// String returns the policy name
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Sink:
		return "sink"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// DefaultDeadState is the label of the shared dead state.
const DefaultDeadState State = "DEAD"

// Config configures the DFA engine.
type Config struct {
	// Policy decides what a transition from a state without a row does.
	//
	// Default: Strict. A malformed description is a caller bug and is
	// reported instead of silently rejecting.
	Policy Policy

	// DeadState is the label the Sink policy routes missing rows to.
	// If the description has a row for it, that row is used.
	//
	// Default: "DEAD"
	DeadState State
}

// DefaultConfig returns the strict engine configuration.
func DefaultConfig() Config {
	return Config{
		Policy:    Strict,
		DeadState: DefaultDeadState,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Policy != Strict && c.Policy != Sink {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: fmt.Sprintf("unknown policy %v", c.Policy),
		}
	}
	if c.Policy == Sink && c.DeadState == "" {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "DeadState must be set for the sink policy",
		}
	}
	return nil
}

// WithPolicy returns a new config with the specified policy
func (c Config) WithPolicy(p Policy) Config {
	c.Policy = p
	return c
}

// WithDeadState returns a new config with the specified dead state label
func (c Config) WithDeadState(s State) Config {
	c.DeadState = s
	return c
}

// BuildConfig configures subset construction.
type BuildConfig struct {
	// MaxStates bounds the number of composite states discovered, not
	// counting the dead state. An N-state NFA never needs more than 2^N.
	//
	// Default: 65,536
	MaxStates int

	// DeadState labels the shared sink that empty move results lead to.
	//
	// Default: "DEAD"
	DeadState State

	// Separator joins the sorted member labels of a composite state into
	// its label.
	//
	// Default: ","
	Separator string
}

// DefaultBuildConfig returns the default subset construction configuration.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		MaxStates: 1 << 16,
		DeadState: DefaultDeadState,
		Separator: ",",
	}
}

// Validate checks if the configuration is valid.
func (c *BuildConfig) Validate() error {
	if c.MaxStates <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	if c.DeadState == "" {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "DeadState must not be empty",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified state limit
func (c BuildConfig) WithMaxStates(n int) BuildConfig {
	c.MaxStates = n
	return c
}

// WithDeadState returns a new config with the specified dead state label
func (c BuildConfig) WithDeadState(s State) BuildConfig {
	c.DeadState = s
	return c
}

// WithSeparator returns a new config with the specified label separator
func (c BuildConfig) WithSeparator(sep string) BuildConfig {
	c.Separator = sep
	return c
}
