package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"github.com/stretchr/testify/require"
)

// CreateTestBoard builds a board from explicit rows and stores and fails the
// test on invalid input.
func CreateTestBoard(t *testing.T, row0, row1 []int, stores [core.NumPlayers]int, player int) *core.Board {
	t.Helper()
	b, err := core.NewBoardFromState([core.NumPlayers][]int{row0, row1}, stores, player)
	require.NoError(t, err)
	return b
}

// StateOf builds a state without a board.
func StateOf(player int, row0, row1 []int) core.State {
	return core.State{Rows: [core.NumPlayers][]int{row0, row1}, Player: player}
}

// SumBeads counts every bead on the board, stores included.
func SumBeads(snap core.Snapshot) int {
	sum := snap.Stores[0] + snap.Stores[1]
	for _, row := range snap.Rows {
		for _, beads := range row {
			sum += beads
		}
	}
	return sum
}

// RandomLegalAction picks a uniformly random legal action of s.
// It returns false when s has none.
func RandomLegalAction(rng *rand.Rand, s core.State) (core.Action, bool) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, false
	}
	return actions[rng.Intn(len(actions))], true
}

// EventRecorder is a subscriber that keeps every event it sees.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func NewEventRecorder() *EventRecorder { return &EventRecorder{} }

func (r *EventRecorder) ID() string                 { return "test_recorder" }
func (r *EventRecorder) InterestedIn(_ string) bool { return true }

func (r *EventRecorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// Types returns the recorded event types in arrival order.
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type()
	}
	return types
}

// Count returns how many events of eventType were recorded.
func (r *EventRecorder) Count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}
