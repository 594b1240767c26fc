package agent

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// StateKey is the canonical, immutable encoding of a (rows, active player)
// pair: the player, then each row as comma-separated counts, rows separated
// by '|'. For example the 3-hole start position for player 0 is "0|4,4,4|4,4,4".
type StateKey string

// CanonicalKey encodes s. Equal rows and player always give the same key and
// any difference in a count, the row split or the player gives a different one.
func CanonicalKey(s core.State) StateKey {
	var sb strings.Builder
	sb.Grow(2 + 4*core.NumPlayers*s.Holes())
	sb.WriteString(strconv.Itoa(s.Player))
	for _, row := range s.Rows {
		sb.WriteByte('|')
		for i, beads := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(beads))
		}
	}
	return StateKey(sb.String())
}

// entryKey addresses one value in the table.
type entryKey struct {
	state  StateKey
	action core.Action
}
