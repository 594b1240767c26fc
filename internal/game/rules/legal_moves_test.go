package rules

import (
	"testing"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/stretchr/testify/assert"
)

func state(player int, row0, row1 []int) core.State {
	return core.State{Rows: [core.NumPlayers][]int{row0, row1}, Player: player}
}

func TestLegalActions(t *testing.T) {
	tests := []struct {
		name     string
		state    core.State
		expected []core.Action
	}{
		{
			name:  "start position player 0",
			state: state(0, []int{4, 4, 4, 4, 4, 4}, []int{4, 4, 4, 4, 4, 4}),
			expected: []core.Action{
				{Side: 0, Hole: 0}, {Side: 0, Hole: 1}, {Side: 0, Hole: 2},
				{Side: 0, Hole: 3}, {Side: 0, Hole: 4}, {Side: 0, Hole: 5},
			},
		},
		{
			name:     "skips empty holes",
			state:    state(1, []int{1, 1, 1}, []int{0, 2, 0}),
			expected: []core.Action{{Side: 1, Hole: 1}},
		},
		{
			name:     "empty own row opens opponent row",
			state:    state(0, []int{0, 0, 0}, []int{3, 0, 1}),
			expected: []core.Action{{Side: 1, Hole: 0}, {Side: 1, Hole: 2}},
		},
		{
			name:     "player 1 with empty row plays player 0 row",
			state:    state(1, []int{0, 5, 0}, []int{0, 0, 0}),
			expected: []core.Action{{Side: 0, Hole: 1}},
		},
		{
			name:     "both rows empty",
			state:    state(0, []int{0, 0}, []int{0, 0}),
			expected: []core.Action{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LegalActions(tt.state))
		})
	}
}

func TestLegalActions_Closure(t *testing.T) {
	states := []core.State{
		state(0, []int{0, 2, 0, 1}, []int{1, 1, 1, 1}),
		state(1, []int{0, 2, 0, 1}, []int{0, 0, 0, 0}),
		state(0, []int{0, 0, 0, 0}, []int{0, 0, 7, 0}),
	}
	for _, s := range states {
		for _, a := range LegalActions(s) {
			assert.Equal(t, OpenSide(s), a.Side)
			assert.Greater(t, s.Rows[a.Side][a.Hole], 0)
			assert.True(t, IsLegal(s, a))
			if s.RowEmpty(s.Player) {
				assert.Equal(t, core.Other(s.Player), a.Side)
			}
		}
	}
}

func TestLegalActions_SortedAscending(t *testing.T) {
	actions := LegalActions(state(1, []int{9, 9, 9}, []int{3, 2, 1}))
	for i := 1; i < len(actions); i++ {
		assert.True(t, actions[i-1].Less(actions[i]))
	}
}

func TestIsLegal(t *testing.T) {
	s := state(0, []int{0, 2, 0}, []int{1, 1, 1})

	assert.True(t, IsLegal(s, core.Action{Side: 0, Hole: 1}))
	assert.False(t, IsLegal(s, core.Action{Side: 0, Hole: 0}), "empty hole")
	assert.False(t, IsLegal(s, core.Action{Side: 1, Hole: 0}), "opponent row is closed")
	assert.False(t, IsLegal(s, core.Action{Side: 0, Hole: 3}), "out of range")
	assert.False(t, IsLegal(s, core.Action{Side: -1, Hole: 0}), "bad side")
}

func TestGetLegalActionMask(t *testing.T) {
	lmc := NewLegalMoveCalculator()

	mask := lmc.GetLegalActionMask(state(0, []int{0, 0, 0}, []int{3, 0, 1}))
	assert.Equal(t, []bool{false, false, false, true, false, true}, mask)

	for idx, legal := range mask {
		a := IndexToAction(idx, 3)
		assert.Equal(t, idx, ActionToIndex(a, 3))
		assert.Equal(t, legal, IsLegal(state(0, []int{0, 0, 0}, []int{3, 0, 1}), a))
	}
}
