package monitoring

import (
	"sync"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/rs/zerolog"
)

// ProgressMonitor aggregates game events into training progress metrics.
// It is an events.Subscriber and is safe for concurrent use.
type ProgressMonitor struct {
	mu            sync.RWMutex
	logger        zerolog.Logger
	started       time.Time
	games         int64
	wins          [core.NumPlayers]int64
	moves         int64
	passes        int64
	storeLandings int64
	longestChain  int
	rejected      int64
	finalTurns    int64
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewProgressMonitor creates a monitor with zeroed counters.
func NewProgressMonitor(logger zerolog.Logger) *ProgressMonitor {
	return &ProgressMonitor{
		logger:   logger.With().Str("component", "progress_monitor").Logger(),
		started:  time.Now(),
		stopChan: make(chan struct{}),
	}
}

func (pm *ProgressMonitor) ID() string { return "progress_monitor" }

func (pm *ProgressMonitor) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeGameEnded, events.TypeMoveApplied, events.TypeMoveRejected:
		return true
	}
	return false
}

func (pm *ProgressMonitor) HandleEvent(e events.Event) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	switch ev := e.(type) {
	case *events.MoveAppliedEvent:
		pm.moves++
		pm.passes += int64(ev.Passes)
		if ev.EndedInStore {
			pm.storeLandings++
		}
		if ev.Passes > pm.longestChain {
			pm.longestChain = ev.Passes
		}
	case *events.MoveRejectedEvent:
		pm.rejected++
	case *events.GameEndedEvent:
		pm.games++
		pm.finalTurns += int64(ev.FinalTurn)
		if core.ValidPlayer(ev.Winner) {
			pm.wins[ev.Winner]++
		}
	}
}

// ProgressMetrics is a point-in-time copy of the monitor's counters.
type ProgressMetrics struct {
	Games            int64                  `json:"games"`
	Wins             [core.NumPlayers]int64 `json:"wins"`
	Moves            int64                  `json:"moves"`
	Passes           int64                  `json:"passes"`
	StoreLandings    int64                  `json:"store_landings"`
	LongestChain     int                    `json:"longest_chain"`
	Rejected         int64                  `json:"rejected"`
	AvgPassesPerMove float64                `json:"avg_passes_per_move"`
	AvgGameLength    float64                `json:"avg_game_length"`
	Elapsed          time.Duration          `json:"elapsed"`
}

// WinRate returns the share of finished games player p won.
func (m ProgressMetrics) WinRate(p int) float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Wins[p]) / float64(m.Games)
}

// GetMetrics returns current progress metrics
func (pm *ProgressMonitor) GetMetrics() ProgressMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	m := ProgressMetrics{
		Games:         pm.games,
		Wins:          pm.wins,
		Moves:         pm.moves,
		Passes:        pm.passes,
		StoreLandings: pm.storeLandings,
		LongestChain:  pm.longestChain,
		Rejected:      pm.rejected,
		Elapsed:       time.Since(pm.started),
	}
	if pm.moves > 0 {
		m.AvgPassesPerMove = float64(pm.passes) / float64(pm.moves)
	}
	if pm.games > 0 {
		m.AvgGameLength = float64(pm.finalTurns) / float64(pm.games)
	}
	return m
}

// LogProgress writes one info line with the current metrics.
func (pm *ProgressMonitor) LogProgress(episode int) {
	m := pm.GetMetrics()
	pm.logger.Info().
		Int("episode", episode).
		Int64("games", m.Games).
		Float64("win_rate_p0", m.WinRate(0)).
		Float64("win_rate_p1", m.WinRate(1)).
		Float64("avg_game_length", m.AvgGameLength).
		Float64("avg_passes_per_move", m.AvgPassesPerMove).
		Int("longest_chain", m.LongestChain).
		Dur("elapsed", m.Elapsed).
		Msg("Training progress")
}

// Start logs metrics every interval until Stop is called.
func (pm *ProgressMonitor) Start(interval time.Duration) {
	go pm.monitor(interval)
	pm.logger.Debug().Dur("interval", interval).Msg("Started progress monitoring")
}

// Stop ends the periodic logging started by Start. It is safe to call twice.
func (pm *ProgressMonitor) Stop() {
	pm.stopOnce.Do(func() { close(pm.stopChan) })
}

func (pm *ProgressMonitor) monitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m := pm.GetMetrics()
			pm.logger.Info().
				Int64("games", m.Games).
				Int64("moves", m.Moves).
				Float64("win_rate_p0", m.WinRate(0)).
				Msg("Progress")
		case <-pm.stopChan:
			return
		}
	}
}
