package game

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard_Stars(t *testing.T) {
	snap := core.Snapshot{
		Rows:   [core.NumPlayers][]int{{1, 2, 3}, {3, 0, 1}},
		Stores: [core.NumPlayers]int{2, 5},
		Winner: core.NoWinner,
	}

	want := strings.Join([]string{
		"*** ***",
		"    **",
		"  * *",
		"Player 0: 2",
		"Player 1: 5",
	}, "\n")
	assert.Equal(t, want, RenderBoard(snap, RenderStars))
}

func TestRenderBoard_StarsEmptyLeftColumn(t *testing.T) {
	snap := core.Snapshot{
		Rows:   [core.NumPlayers][]int{{2, 0}, {0, 0}},
		Stores: [core.NumPlayers]int{6, 0},
		Winner: core.NoWinner,
	}
	assert.Equal(t, " \n **\nPlayer 0: 6\nPlayer 1: 0", RenderBoard(snap, RenderStars))
}

func TestRenderBoard_Numeric(t *testing.T) {
	snap := core.Snapshot{
		Rows:   [core.NumPlayers][]int{{4, 0}, {1, 12}},
		Stores: [core.NumPlayers]int{3, 7},
		Player: 1,
		Winner: core.NoWinner,
	}
	out := RenderBoard(snap, RenderNumeric)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], " side 0"))
	assert.True(t, strings.HasPrefix(lines[2], ">side 1"), "the active player is marked")
	assert.Contains(t, lines[2], "12")
	assert.Contains(t, lines[2], "7")
	assert.NotContains(t, out, "winner")

	snap.Winner = 1
	out = RenderBoard(snap, RenderNumeric)
	assert.Contains(t, out, "winner: player 1")
	assert.NotContains(t, out, ">side")
}

func TestParseRenderStyle(t *testing.T) {
	style, err := ParseRenderStyle("")
	require.NoError(t, err)
	assert.Equal(t, RenderStars, style)

	style, err = ParseRenderStyle("numeric")
	require.NoError(t, err)
	assert.Equal(t, RenderNumeric, style)

	_, err = ParseRenderStyle("ascii")
	assert.ErrorIs(t, err, ErrUnknownRenderStyle)
}
