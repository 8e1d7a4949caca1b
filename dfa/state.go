package dfa

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/coregx/automata/nfa"
)

// StateKey identifies a composite state by its set of NFA states.
//
// The key is the sorted member IDs, each encoded as 4 little-endian bytes.
// It is exact rather than hashed, so distinct sets never share a key.
type StateKey string

// ComputeStateKey computes the key for a set of NFA state IDs.
//
// The same set produces the same key regardless of order or duplicates:
// {1,2,3}, {3,2,1} and {3,1,2,1} all map to one key.
func ComputeStateKey(members []nfa.StateID) StateKey {
	if len(members) == 0 {
		return ""
	}
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	buf := make([]byte, 0, 4*len(sorted))
	for _, id := range sorted {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
	}
	return StateKey(buf)
}

// composite is a set of NFA states standing for one DFA state.
// members is sorted by ID and free of duplicates.
type composite struct {
	members []nfa.StateID
	key     StateKey
	name    State
}

// newComposite canonicalizes members into a composite.
func newComposite(n *nfa.NFA, members []nfa.StateID, sep string) composite {
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return composite{
		members: sorted,
		key:     ComputeStateKey(sorted),
		name:    compositeName(n, sorted, sep),
	}
}

// compositeName joins member labels in sorted order. NFA IDs follow label
// order, so sorted IDs give sorted labels.
func compositeName(n *nfa.NFA, sorted []nfa.StateID, sep string) State {
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = string(n.Label(id))
	}
	return State(strings.Join(parts, sep))
}

func (c composite) accepting(n *nfa.NFA) bool {
	for _, id := range c.members {
		if n.IsAcceptID(id) {
			return true
		}
	}
	return false
}

func (c composite) labels(n *nfa.NFA) []nfa.State {
	out := make([]nfa.State, len(c.members))
	for i, id := range c.members {
		out[i] = n.Label(id)
	}
	return out
}
