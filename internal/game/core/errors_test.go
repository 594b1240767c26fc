package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		player   int
		action   Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			err:   nil,
			isNil: true,
		},
		{
			name:     "empty hole",
			player:   0,
			action:   Action{Side: 0, Hole: 3},
			err:      ErrEmptyHole,
			expected: "player 0: sow from (0,3): starting hole is empty",
		},
		{
			name:     "game over",
			player:   1,
			action:   Action{Side: 0, Hole: 5},
			err:      ErrGameOver,
			expected: "player 1: sow from (0,5): game is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.player, tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidAction, ErrEmptyHole, ErrIllegalAction, ErrGameOver,
		ErrInvalidPlayer, ErrInvalidBoard, ErrRelayLimit,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v should not match %v", all[i], all[j])
			}
		}
	}
}
