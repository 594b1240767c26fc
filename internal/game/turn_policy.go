package game

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// TurnPolicy decides who moves after a completed, non-terminal move.
type TurnPolicy string

const (
	// TurnPolicyAlwaysSwitch hands the turn to the opponent after every move.
	TurnPolicyAlwaysSwitch TurnPolicy = "always_switch"
	// TurnPolicyStoreBonus lets the mover go again when the chain ended in
	// their own store.
	TurnPolicyStoreBonus TurnPolicy = "store_bonus"
)

var ErrUnknownTurnPolicy = errors.New("unknown turn policy")

// ParseTurnPolicy maps a config string to a policy. Empty selects always_switch.
func ParseTurnPolicy(s string) (TurnPolicy, error) {
	if s == "" {
		return TurnPolicyAlwaysSwitch, nil
	}
	p := TurnPolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTurnPolicy, s)
	}
	return p, nil
}

func (p TurnPolicy) Valid() bool {
	return p == TurnPolicyAlwaysSwitch || p == TurnPolicyStoreBonus
}

// Next returns the player to move after mover's move.
func (p TurnPolicy) Next(mover int, move *core.MoveResult) int {
	if p == TurnPolicyStoreBonus && move != nil && move.EndedInStore {
		return mover
	}
	return core.Other(mover)
}
