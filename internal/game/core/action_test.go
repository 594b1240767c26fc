package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_Less(t *testing.T) {
	assert.True(t, Action{0, 5}.Less(Action{1, 0}))
	assert.True(t, Action{1, 1}.Less(Action{1, 2}))
	assert.False(t, Action{1, 2}.Less(Action{1, 2}))
	assert.False(t, Action{1, 0}.Less(Action{0, 5}))
}

func TestAction_InBounds(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		expected bool
	}{
		{"first hole", Action{0, 0}, true},
		{"last hole other side", Action{1, 5}, true},
		{"hole equals holes", Action{0, 6}, false},
		{"negative hole", Action{0, -1}, false},
		{"bad side", Action{2, 0}, false},
		{"negative side", Action{-1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.InBounds(6))
		})
	}
}

func TestNext_TraversalOrder(t *testing.T) {
	const holes = 3

	t.Run("mover 0 full lap", func(t *testing.T) {
		p := Position{Side: 0, Hole: 0}
		var visited []Position
		for i := 0; i < 7; i++ {
			p = next(p, 0, holes)
			visited = append(visited, p)
		}
		assert.Equal(t, []Position{
			{0, 1}, {0, 2}, {0, 3}, // own holes then own store
			{1, 0}, {1, 1}, {1, 2}, // opponent row, store skipped
			{0, 0},
		}, visited)
	})

	t.Run("mover 1 starting on opponent row", func(t *testing.T) {
		p := Position{Side: 0, Hole: 1}
		var visited []Position
		for i := 0; i < 5; i++ {
			p = next(p, 1, holes)
			visited = append(visited, p)
		}
		assert.Equal(t, []Position{
			{0, 2}, {1, 0}, {1, 1}, {1, 2}, {1, 3},
		}, visited)
	})
}
