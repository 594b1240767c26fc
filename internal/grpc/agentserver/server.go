package agentserver

import (
	"context"
	"errors"
	"sync"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/monitoring"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server exposes a trained agent over gRPC. The agent is not safe for
// concurrent use, so every call holds mu.
type Server struct {
	mu      sync.Mutex
	agent   *agent.Agent
	monitor *monitoring.ProgressMonitor
	masks   *rules.LegalMoveCalculator
	holes   int
	logger  zerolog.Logger
}

var _ AgentServiceServer = (*Server)(nil)

// NewServer serves a for boards with the given number of holes. monitor may
// be nil, in which case Stats reports only the table.
func NewServer(a *agent.Agent, holes int, monitor *monitoring.ProgressMonitor, logger zerolog.Logger) *Server {
	return &Server{
		agent:   a,
		monitor: monitor,
		masks:   rules.NewLegalMoveCalculator(),
		holes:   holes,
		logger:  logger.With().Str("component", "agent_server").Logger(),
	}
}

// SetEpsilon changes the exploration rate used by ChooseAction when the
// caller asks for exploration.
func (s *Server) SetEpsilon(epsilon float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.agent.SetEpsilon(epsilon); err != nil {
		return err
	}
	s.logger.Info().Float64("epsilon", epsilon).Msg("Exploration rate updated")
	return nil
}

// ChooseAction returns the agent's move for the supplied state.
func (s *Server) ChooseAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	state, err := stateFromStruct(req, s.holes)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid state: %v", err)
	}
	explore := req.GetFields()["explore"].GetBoolValue()

	s.mu.Lock()
	action, err := s.agent.ChooseAction(state, explore)
	value := s.agent.Value(state, action)
	s.mu.Unlock()

	if errors.Is(err, agent.ErrNoLegalActions) {
		return nil, status.Error(codes.FailedPrecondition, "no legal actions in state")
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "choose action: %v", err)
	}

	s.logger.Debug().
		Str("action", action.String()).
		Float64("value", value).
		Bool("explore", explore).
		Msg("Action chosen")

	return structpb.NewStruct(actionValue(action, value))
}

// Evaluate returns the learned value of every legal action in the state and
// the flat legal action mask indexed by side*holes+hole.
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	state, err := stateFromStruct(req, s.holes)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid state: %v", err)
	}

	actions := rules.LegalActions(state)
	if len(actions) == 0 {
		return nil, status.Error(codes.FailedPrecondition, "no legal actions in state")
	}

	s.mu.Lock()
	values := make([]interface{}, len(actions))
	for i, a := range actions {
		values[i] = actionValue(a, s.agent.Value(state, a))
	}
	best, bestValue, err := s.agent.GreedyAction(state)
	future := s.agent.BestFutureValue(state)
	s.mu.Unlock()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "evaluate: %v", err)
	}

	mask := s.masks.GetLegalActionMask(state)
	legal := make([]interface{}, len(mask))
	for i, ok := range mask {
		legal[i] = ok
	}

	return structpb.NewStruct(map[string]interface{}{
		"actions":     values,
		"legal_mask":  legal,
		"best":        actionValue(best, bestValue),
		"best_future": future,
	})
}

// Stats reports the size of the value table, the hyper-parameters and,
// when a monitor is attached, the training progress counters.
func (s *Server) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.mu.Lock()
	out := map[string]interface{}{
		"holes":   s.holes,
		"entries": s.agent.Table().Len(),
		"states":  s.agent.Table().States(),
		"alpha":   s.agent.Alpha(),
		"epsilon": s.agent.Epsilon(),
	}
	s.mu.Unlock()

	if s.monitor != nil {
		m := s.monitor.GetMetrics()
		out["games"] = m.Games
		out["wins_p0"] = m.Wins[0]
		out["wins_p1"] = m.Wins[1]
		out["win_rate_p0"] = m.WinRate(0)
		out["win_rate_p1"] = m.WinRate(1)
		out["avg_game_length"] = m.AvgGameLength
		out["avg_passes_per_move"] = m.AvgPassesPerMove
		out["longest_chain"] = m.LongestChain
	}
	return structpb.NewStruct(out)
}
