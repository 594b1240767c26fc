package agent

import "github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"

// ValueTable maps (state, action) pairs to learned values. Absent pairs are
// worth 0. Entries are created on first Set and never evicted.
type ValueTable struct {
	values map[entryKey]float64
}

// NewValueTable creates an empty table.
func NewValueTable() *ValueTable {
	return &ValueTable{values: make(map[entryKey]float64)}
}

// Get returns the stored value for (s, a), or 0 when the pair is unseen.
func (t *ValueTable) Get(s core.State, a core.Action) float64 {
	return t.values[entryKey{state: CanonicalKey(s), action: a}]
}

// Set inserts or overwrites the value for (s, a).
func (t *ValueTable) Set(s core.State, a core.Action, value float64) {
	t.values[entryKey{state: CanonicalKey(s), action: a}] = value
}

// Len returns the number of stored entries.
func (t *ValueTable) Len() int {
	return len(t.values)
}

// States returns the number of distinct states with at least one entry.
func (t *ValueTable) States() int {
	seen := make(map[StateKey]struct{})
	for k := range t.values {
		seen[k.state] = struct{}{}
	}
	return len(seen)
}
