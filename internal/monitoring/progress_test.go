package monitoring

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func move(passes int, inStore bool) *events.MoveAppliedEvent {
	result := &core.MoveResult{Mover: 0, Passes: make([]core.Pass, passes), EndedInStore: inStore}
	return events.NewMoveAppliedEvent("g", 1, core.Action{}, result, [core.NumPlayers]int{})
}

func TestProgressMonitor_InterestedIn(t *testing.T) {
	pm := NewProgressMonitor(zerolog.Nop())
	assert.True(t, pm.InterestedIn(events.TypeGameEnded))
	assert.True(t, pm.InterestedIn(events.TypeMoveApplied))
	assert.True(t, pm.InterestedIn(events.TypeMoveRejected))
	assert.False(t, pm.InterestedIn(events.TypeTurnChanged))
	assert.False(t, pm.InterestedIn(events.TypeGameStarted))
}

func TestProgressMonitor_Metrics(t *testing.T) {
	bus := events.NewEventBus(zerolog.Nop())
	pm := NewProgressMonitor(zerolog.Nop())
	bus.Subscribe(pm)

	assert.Equal(t, 0.0, pm.GetMetrics().WinRate(0))

	bus.Publish(move(1, true))
	bus.Publish(move(3, false))
	bus.Publish(events.NewMoveRejectedEvent("g", 2, 1, core.Action{}, core.ErrIllegalAction))
	bus.Publish(events.NewGameEndedEvent("g", 0, [core.NumPlayers]int{30, 18}, time.Second, 10))
	bus.Publish(events.NewGameEndedEvent("g", 0, [core.NumPlayers]int{24, 24}, time.Second, 20))
	bus.Publish(events.NewGameEndedEvent("g", 1, [core.NumPlayers]int{10, 38}, time.Second, 30))
	bus.Publish(events.NewTurnChangedEvent("g", 3, 0, 1))

	m := pm.GetMetrics()
	assert.Equal(t, int64(3), m.Games)
	assert.Equal(t, [core.NumPlayers]int64{2, 1}, m.Wins)
	assert.InDelta(t, 2.0/3.0, m.WinRate(0), 1e-9)
	assert.Equal(t, int64(2), m.Moves)
	assert.Equal(t, int64(4), m.Passes)
	assert.Equal(t, int64(1), m.StoreLandings)
	assert.Equal(t, 3, m.LongestChain)
	assert.Equal(t, int64(1), m.Rejected)
	assert.Equal(t, 2.0, m.AvgPassesPerMove)
	assert.Equal(t, 20.0, m.AvgGameLength)
}

func TestProgressMonitor_LogProgress(t *testing.T) {
	buf, logger := testutil.BufferLogger(zerolog.InfoLevel)
	pm := NewProgressMonitor(logger)
	pm.HandleEvent(events.NewGameEndedEvent("g", 1, [core.NumPlayers]int{0, 48}, time.Second, 7))

	pm.LogProgress(42)

	out := buf.String()
	assert.Contains(t, out, `"episode":42`)
	assert.Contains(t, out, `"games":1`)
	assert.Contains(t, out, `"win_rate_p1":1`)
	assert.Contains(t, out, "Training progress")
}

func TestProgressMonitor_StartStop(t *testing.T) {
	pm := NewProgressMonitor(zerolog.Nop())
	pm.Start(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	pm.Stop()
	pm.Stop()
}
