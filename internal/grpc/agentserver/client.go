package agentserver

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/rules"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ActionValue pairs an action with its learned value.
type ActionValue struct {
	Action core.Action
	Value  float64
}

// Evaluation is the decoded Evaluate response.
type Evaluation struct {
	Values     []ActionValue
	Best       ActionValue
	BestFuture float64
	Mask       []bool
}

// LegalActions expands the mask back into actions, ascending by (side, hole).
func (e Evaluation) LegalActions() []core.Action {
	holes := len(e.Mask) / core.NumPlayers
	var actions []core.Action
	for i, ok := range e.Mask {
		if ok {
			actions = append(actions, rules.IndexToAction(i, holes))
		}
	}
	return actions
}

// Client calls the agent service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ChooseAction asks the remote agent for a move in s.
func (c *Client) ChooseAction(ctx context.Context, s core.State, explore bool, opts ...grpc.CallOption) (ActionValue, error) {
	req, err := StateToStruct(s, explore)
	if err != nil {
		return ActionValue{}, fmt.Errorf("encode state: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, chooseActionMethod, req, out, opts...); err != nil {
		return ActionValue{}, err
	}
	action, value, err := actionFromStruct(out.GetFields())
	if err != nil {
		return ActionValue{}, fmt.Errorf("decode response: %w", err)
	}
	return ActionValue{Action: action, Value: value}, nil
}

// Evaluate returns the value of every legal action in s, the greedy pick and
// the legal action mask.
func (c *Client) Evaluate(ctx context.Context, s core.State, opts ...grpc.CallOption) (Evaluation, error) {
	req, err := StateToStruct(s, false)
	if err != nil {
		return Evaluation{}, fmt.Errorf("encode state: %w", err)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, evaluateMethod, req, out, opts...); err != nil {
		return Evaluation{}, err
	}
	fields := out.GetFields()

	list := fields["actions"].GetListValue().GetValues()
	ev := Evaluation{
		Values:     make([]ActionValue, 0, len(list)),
		BestFuture: fields["best_future"].GetNumberValue(),
	}
	for _, v := range list {
		action, value, err := actionFromStruct(v.GetStructValue().GetFields())
		if err != nil {
			return Evaluation{}, fmt.Errorf("decode response: %w", err)
		}
		ev.Values = append(ev.Values, ActionValue{Action: action, Value: value})
	}

	best, bestValue, err := actionFromStruct(fields["best"].GetStructValue().GetFields())
	if err != nil {
		return Evaluation{}, fmt.Errorf("decode response: %w", err)
	}
	ev.Best = ActionValue{Action: best, Value: bestValue}

	for _, v := range fields["legal_mask"].GetListValue().GetValues() {
		ev.Mask = append(ev.Mask, v.GetBoolValue())
	}
	return ev, nil
}

// Stats returns the raw statistics document.
func (c *Client) Stats(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, statsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RemotePlayer plays the served agent's greedy move. It satisfies
// play.Player.
type RemotePlayer struct {
	client *Client
}

func NewRemotePlayer(client *Client) *RemotePlayer {
	return &RemotePlayer{client: client}
}

// ChooseAction evaluates s remotely and returns the best action, rejecting
// answers that do not agree with the local move rules.
func (p *RemotePlayer) ChooseAction(ctx context.Context, s core.State) (core.Action, error) {
	ev, err := p.client.Evaluate(ctx, s)
	if err != nil {
		return core.Action{}, err
	}
	if len(ev.Mask) != core.NumPlayers*s.Holes() {
		return core.Action{}, fmt.Errorf("%w: server mask has %d entries for %d holes", ErrRemoteMismatch, len(ev.Mask), s.Holes())
	}
	local := rules.LegalActions(s)
	remote := ev.LegalActions()
	if len(local) != len(remote) {
		return core.Action{}, fmt.Errorf("%w: server lists %d legal actions, expected %d", ErrRemoteMismatch, len(remote), len(local))
	}
	for i := range local {
		if local[i] != remote[i] {
			return core.Action{}, fmt.Errorf("%w: server legal action %s, expected %s", ErrRemoteMismatch, remote[i], local[i])
		}
	}
	if !rules.IsLegal(s, ev.Best.Action) {
		return core.Action{}, fmt.Errorf("%w: server chose illegal action %s", ErrRemoteMismatch, ev.Best.Action)
	}
	return ev.Best.Action, nil
}
