package game

import (
	"testing"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, mutate func(*GameConfig)) (*Engine, *testutil.EventRecorder) {
	t.Helper()
	bus := events.NewEventBus(testutil.NopLogger())
	rec := testutil.NewEventRecorder()
	bus.Subscribe(rec)

	cfg := DefaultGameConfig()
	cfg.Rng = testutil.NewTestRNG(12345)
	cfg.EventBus = bus
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e, rec
}

func TestNewEngine(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	assert.Equal(t, 6, e.Holes())
	assert.Equal(t, 0, e.ActivePlayer())
	assert.Equal(t, 0, e.Turn())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, core.NoWinner, e.Winner())
	assert.NotEmpty(t, e.GameID(), "an empty game id is replaced by a uuid")
	assert.Equal(t, 48, testutil.SumBeads(e.Snapshot()))
	assert.Len(t, e.LegalActions(), 6)
	assert.Equal(t, []string{events.TypeGameStarted}, rec.Types())

	started := rec.Events()[0].(*events.GameStartedEvent)
	assert.Equal(t, e.GameID(), started.GameID())
	assert.Equal(t, 6, started.Holes)
	assert.Equal(t, 4, started.InitialBeads)
}

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero holes", func(c *GameConfig) { c.Holes = 0 }},
		{"zero beads", func(c *GameConfig) { c.InitialBeads = 0 }},
		{"bad first player", func(c *GameConfig) { c.FirstPlayer = 2 }},
		{"bad turn policy", func(c *GameConfig) { c.TurnPolicy = "never" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			e, err := NewEngine(cfg)
			assert.ErrorIs(t, err, ErrInvalidGameConfig)
			assert.Nil(t, e)
		})
	}
}

func TestNewEngine_RandomFirstPlayer(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(0); seed < 32; seed++ {
		cfg := DefaultGameConfig()
		cfg.FirstPlayer = RandomFirstPlayer
		cfg.Rng = testutil.NewTestRNG(seed)
		e, err := NewEngine(cfg)
		require.NoError(t, err)
		seen[e.ActivePlayer()] = true
	}
	assert.True(t, seen[0] && seen[1], "both players should open at least once over 32 seeds")
}

func TestEngine_Step_AlwaysSwitch(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	res, err := e.Step(core.Action{Side: 0, Hole: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4}, res.Before.Rows[0])
	assert.Equal(t, []int{4, 4, 0, 5, 5, 5}, res.After.Rows[0])
	assert.Equal(t, 0, res.After.Player, "the post-move state still has the mover active")
	assert.True(t, res.Move.EndedInStore)
	assert.False(t, res.Done)
	assert.Equal(t, 1, res.NextPlayer)
	assert.Equal(t, 1, e.ActivePlayer())
	assert.Equal(t, [core.NumPlayers]int{1, 0}, e.Stores())

	assert.Equal(t, []string{
		events.TypeGameStarted,
		events.TypeMoveApplied,
		events.TypeTurnChanged,
	}, rec.Types())
}

func TestEngine_Step_StoreBonus(t *testing.T) {
	e, rec := newTestEngine(t, func(c *GameConfig) { c.TurnPolicy = TurnPolicyStoreBonus })

	res, err := e.Step(core.Action{Side: 0, Hole: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NextPlayer)
	assert.Equal(t, 0, e.ActivePlayer())
	assert.Equal(t, 0, rec.Count(events.TypeTurnChanged))

	// Hole 2 was emptied by the first move and the mover still holds the turn.
	_, err = e.Step(core.Action{Side: 0, Hole: 2})
	assert.ErrorIs(t, err, core.ErrIllegalAction)
	assert.Equal(t, 1, rec.Count(events.TypeMoveRejected))
}

func TestEngine_Step_RejectsBadActions(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		err    error
	}{
		{"opponent side while own row has beads", core.Action{Side: 1, Hole: 0}, core.ErrIllegalAction},
		{"hole out of range", core.Action{Side: 0, Hole: 6}, core.ErrInvalidAction},
		{"negative hole", core.Action{Side: 0, Hole: -1}, core.ErrInvalidAction},
		{"bad side", core.Action{Side: 2, Hole: 0}, core.ErrInvalidAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(t, nil)
			before := e.Snapshot()

			res, err := e.Step(tt.action)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
			assert.Equal(t, before, e.Snapshot())
			assert.Equal(t, 0, e.Turn())
			assert.Equal(t, 1, rec.Count(events.TypeMoveRejected))
		})
	}
}

func TestEngine_Step_GameOver(t *testing.T) {
	e, rec := newTestEngine(t, func(c *GameConfig) {
		c.Holes = 1
		c.InitialBeads = 1
	})

	res, err := e.Step(core.Action{Side: 0, Hole: 0})
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, 1, res.NextPlayer)

	res, err = e.Step(core.Action{Side: 1, Hole: 0})
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, 0, res.Winner, "tied stores go to player 0")
	assert.Equal(t, 1, res.NextPlayer)
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.Winner())
	assert.Empty(t, e.LegalActions())

	_, err = e.Step(core.Action{Side: 1, Hole: 0})
	assert.ErrorIs(t, err, core.ErrGameOver)

	require.Equal(t, 1, rec.Count(events.TypeGameEnded))
	ended := rec.Events()[len(rec.Events())-1].(*events.GameEndedEvent)
	assert.Equal(t, 0, ended.Winner)
	assert.Equal(t, 2, ended.FinalTurn)
	assert.Equal(t, [core.NumPlayers]int{1, 1}, ended.Stores)
}

func TestEngine_Step_RelayLimitLeavesBoardUntouched(t *testing.T) {
	e, rec := newTestEngine(t, func(c *GameConfig) {
		c.MaxRelayPasses = 1
	})
	before := e.Snapshot()

	// Four beads from (0,0) land on (0,4), which already holds beads.
	res, err := e.Step(core.Action{Side: 0, Hole: 0})
	require.ErrorIs(t, err, core.ErrRelayLimit)
	assert.Nil(t, res)

	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, 0, e.Turn())
	assert.Equal(t, 0, e.ActivePlayer())
	assert.Zero(t, e.Stats().Moves)
	assert.Equal(t, 1, rec.Count(events.TypeMoveRejected))
	assert.Zero(t, rec.Count(events.TypeMoveApplied))
	assert.Len(t, e.LegalActions(), 6)
}

func TestEngine_RandomGamesConserveBeads(t *testing.T) {
	for _, policy := range []TurnPolicy{TurnPolicyAlwaysSwitch, TurnPolicyStoreBonus} {
		t.Run(string(policy), func(t *testing.T) {
			rng := testutil.NewTestRNG(99)
			finished := 0
			for game := 0; game < 100; game++ {
				e, _ := newTestEngine(t, func(c *GameConfig) {
					c.Holes = 4
					c.InitialBeads = 3
					c.TurnPolicy = policy
					c.Rng = rng
				})
				for turn := 0; turn < 300 && !e.IsGameOver(); turn++ {
					s := e.State()
					action, ok := testutil.RandomLegalAction(rng, s)
					require.True(t, ok, "a live game always has a legal action")
					require.True(t, rules.IsLegal(s, action))

					res, err := e.Step(action)
					require.NoError(t, err)
					require.Equal(t, 24, testutil.SumBeads(e.Snapshot()))
					if !res.Done {
						assert.Equal(t, policy.Next(res.Move.Mover, res.Move), e.ActivePlayer())
					}
				}
				if e.IsGameOver() {
					finished++
					stores := e.Stores()
					assert.Equal(t, 24, stores[0]+stores[1])
					assert.Equal(t, core.DecideWinner(stores), e.Winner())
				}
				stats := e.Stats()
				assert.Equal(t, e.Turn(), stats.Moves)
				assert.Equal(t, stats.Moves, stats.MovesByPlayer[0]+stats.MovesByPlayer[1])
			}
			assert.Positive(t, finished)
		})
	}
}
