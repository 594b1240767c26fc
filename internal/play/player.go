package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/agent"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
)

var (
	ErrInputClosed        = errors.New("input closed before a legal move was entered")
	ErrInvalidHumanPlayer = errors.New("human player must be -1, 0 or 1")
	ErrNoLegalMove        = errors.New("no legal move available")
)

// Player picks an action for the active player of s.
type Player interface {
	ChooseAction(ctx context.Context, s core.State) (core.Action, error)
}

// HumanPlayer reads a side and a hole from a line-oriented input and keeps
// asking until the pair is legal.
type HumanPlayer struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHumanPlayer(in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{in: bufio.NewScanner(in), out: out}
}

func (h *HumanPlayer) ChooseAction(ctx context.Context, s core.State) (core.Action, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.Action{}, err
		}
		side, err := h.readInt("Choose Side: ")
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return core.Action{}, err
			}
			fmt.Fprintln(h.out, "Invalid move, try again.")
			continue
		}
		hole, err := h.readInt("Choose Hole: ")
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return core.Action{}, err
			}
			fmt.Fprintln(h.out, "Invalid move, try again.")
			continue
		}
		action := core.Action{Side: side, Hole: hole}
		if rules.IsLegal(s, action) {
			return action, nil
		}
		fmt.Fprintln(h.out, "Invalid move, try again.")
	}
}

func (h *HumanPlayer) readInt(prompt string) (int, error) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInputClosed, err)
		}
		return 0, ErrInputClosed
	}
	return strconv.Atoi(strings.TrimSpace(h.in.Text()))
}

// AgentPlayer plays the learned policy greedily.
type AgentPlayer struct {
	agent *agent.Agent
}

func NewAgentPlayer(a *agent.Agent) *AgentPlayer {
	return &AgentPlayer{agent: a}
}

func (p *AgentPlayer) ChooseAction(_ context.Context, s core.State) (core.Action, error) {
	return p.agent.ChooseAction(s, false)
}

// RandomPlayer picks a uniformly random legal action.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(rng *rand.Rand) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) ChooseAction(_ context.Context, s core.State) (core.Action, error) {
	actions := rules.LegalActions(s)
	if len(actions) == 0 {
		return core.Action{}, ErrNoLegalMove
	}
	return actions[p.rng.Intn(len(actions))], nil
}
