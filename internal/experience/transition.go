package experience

import (
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// Transition is one value update: the player whose move is being valued,
// the state they moved from, the action, the reward and the resulting state.
type Transition struct {
	ID          string
	GameID      string
	Turn        int
	Player      int
	State       core.State
	Action      core.Action
	Reward      float64
	NextState   core.State
	Done        bool
	CollectedAt time.Time
}

// NewTransition stamps a transition with a fresh id and collection time.
// The states are cloned so later board changes cannot reach them.
func NewTransition(gameID string, turn, player int, state core.State, action core.Action, reward float64, next core.State, done bool) Transition {
	return Transition{
		ID:          uuid.New().String(),
		GameID:      gameID,
		Turn:        turn,
		Player:      player,
		State:       state.Clone(),
		Action:      action,
		Reward:      reward,
		NextState:   next.Clone(),
		Done:        done,
		CollectedAt: time.Now(),
	}
}
