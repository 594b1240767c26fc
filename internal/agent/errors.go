package agent

import "errors"

var (
	ErrNoLegalActions = errors.New("no legal actions in state")
	ErrInvalidAlpha   = errors.New("alpha must be in (0, 1]")
	ErrInvalidEpsilon = errors.New("epsilon must be in [0, 1]")
)
