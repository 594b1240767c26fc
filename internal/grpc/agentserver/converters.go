package agentserver

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"google.golang.org/protobuf/types/known/structpb"
)

// stateFromStruct decodes {"player": p, "rows": [[...], [...]]} for a board
// with the given number of holes.
func stateFromStruct(req *structpb.Struct, holes int) (core.State, error) {
	fields := req.GetFields()

	player, err := intField(fields["player"], "player")
	if err != nil {
		return core.State{}, err
	}
	if !core.ValidPlayer(player) {
		return core.State{}, fmt.Errorf("player must be 0 or 1, got %d", player)
	}

	rowsValue, ok := fields["rows"]
	if !ok || rowsValue.GetListValue() == nil {
		return core.State{}, fmt.Errorf("rows must be a list of %d rows", core.NumPlayers)
	}
	rows := rowsValue.GetListValue().GetValues()
	if len(rows) != core.NumPlayers {
		return core.State{}, fmt.Errorf("rows must hold %d rows, got %d", core.NumPlayers, len(rows))
	}

	s := core.State{Player: player}
	for p, row := range rows {
		if row.GetListValue() == nil {
			return core.State{}, fmt.Errorf("rows[%d] must be a list", p)
		}
		counts := row.GetListValue().GetValues()
		if len(counts) != holes {
			return core.State{}, fmt.Errorf("rows[%d] must hold %d holes, got %d", p, holes, len(counts))
		}
		s.Rows[p] = make([]int, holes)
		for h, v := range counts {
			beads, err := intField(v, fmt.Sprintf("rows[%d][%d]", p, h))
			if err != nil {
				return core.State{}, err
			}
			if beads < 0 {
				return core.State{}, fmt.Errorf("rows[%d][%d] must be non-negative, got %d", p, h, beads)
			}
			s.Rows[p][h] = beads
		}
	}
	return s, nil
}

func intField(v *structpb.Value, name string) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, n.NumberValue)
	}
	return int(n.NumberValue), nil
}

// StateToStruct encodes s in the request layout the service accepts.
func StateToStruct(s core.State, explore bool) (*structpb.Struct, error) {
	rows := make([]interface{}, len(s.Rows))
	for p, row := range s.Rows {
		counts := make([]interface{}, len(row))
		for h, beads := range row {
			counts[h] = beads
		}
		rows[p] = counts
	}
	return structpb.NewStruct(map[string]interface{}{
		"player":  s.Player,
		"rows":    rows,
		"explore": explore,
	})
}

func actionValue(a core.Action, value float64) map[string]interface{} {
	return map[string]interface{}{
		"side":  a.Side,
		"hole":  a.Hole,
		"value": value,
	}
}

func actionFromStruct(fields map[string]*structpb.Value) (core.Action, float64, error) {
	side, err := intField(fields["side"], "side")
	if err != nil {
		return core.Action{}, 0, err
	}
	hole, err := intField(fields["hole"], "hole")
	if err != nil {
		return core.Action{}, 0, err
	}
	return core.Action{Side: side, Hole: hole}, fields["value"].GetNumberValue(), nil
}
