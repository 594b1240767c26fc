package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events/subscribers"
)

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &logLine))
	return logLine
}

func TestLoggerSubscriber(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("test-logger", zerolog.Nop(), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))

	logSub.SetEventFilter([]string{events.TypeGameEnded})
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeMoveApplied))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeMoveApplied))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("game-1", 6, 4, 1),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(6), logLine["holes"])
				assert.Equal(t, float64(4), logLine["initial_beads"])
				assert.Equal(t, float64(1), logLine["first_player"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("game-1", 1, [core.NumPlayers]int{20, 28}, time.Second, 31),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["winner"])
				assert.Equal(t, float64(20), logLine["store_0"])
				assert.Equal(t, float64(28), logLine["store_1"])
				assert.Equal(t, float64(31), logLine["final_turn"])
			},
		},
		{
			name: "MoveAppliedEvent",
			event: events.NewMoveAppliedEvent("game-1", 3, core.Action{Side: 0, Hole: 2},
				&core.MoveResult{Mover: 0, Passes: []core.Pass{{Beads: 2}, {Beads: 4}}, EndedInStore: true},
				[core.NumPlayers]int{1, 0}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(3), logLine["turn"])
				assert.Equal(t, float64(2), logLine["hole"])
				assert.Equal(t, float64(2), logLine["passes"])
				assert.Equal(t, float64(6), logLine["beads_sown"])
				assert.Equal(t, true, logLine["ended_in_store"])
			},
		},
		{
			name:  "MoveRejectedEvent",
			event: events.NewMoveRejectedEvent("game-1", 4, 1, core.Action{Side: 0, Hole: 0}, core.ErrIllegalAction),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "action not legal in this state", logLine["reason"])
			},
		},
		{
			name:  "TurnChangedEvent",
			event: events.NewTurnChangedEvent("game-1", 5, 1, 0),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["from_player"])
				assert.Equal(t, float64(0), logLine["to_player"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			logLine := lastLogLine(t, &buf)
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "game-1", logLine["game_id"])
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.WarnLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewTurnChangedEvent("game-2", 1, 0, 1))

	logLine := lastLogLine(t, &buf)
	assert.Equal(t, "warn", logLine["level"])
	data, ok := logLine["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode should embed the event as JSON")
	assert.Equal(t, "game-2", data["game_id"])
	assert.Equal(t, float64(1), data["ToPlayer"])
}
