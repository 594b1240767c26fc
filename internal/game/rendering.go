package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
)

// RenderStyle selects the board text layout.
type RenderStyle string

const (
	// RenderStars draws each hole as a run of asterisks: player 1's row down
	// the left column, player 0's row up the right column.
	RenderStars RenderStyle = "stars"
	// RenderNumeric prints indexed counts with ANSI colours.
	RenderNumeric RenderStyle = "numeric"
)

var ErrUnknownRenderStyle = errors.New("unknown render style")

// ParseRenderStyle maps a config string to a style. Empty selects stars.
func ParseRenderStyle(s string) (RenderStyle, error) {
	switch RenderStyle(s) {
	case "", RenderStars:
		return RenderStars, nil
	case RenderNumeric:
		return RenderNumeric, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRenderStyle, s)
	}
}

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorBlue   = "\033[34m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue}

// RenderBoard returns the text form of snap. It never writes anywhere.
func RenderBoard(snap core.Snapshot, style RenderStyle) string {
	if style == RenderNumeric {
		return renderNumeric(snap)
	}
	return renderStars(snap)
}

func renderStars(snap core.Snapshot) string {
	left, right := snap.Rows[1], snap.Rows[0]
	width := 0
	for _, beads := range left {
		if beads > width {
			width = beads
		}
	}

	lines := make([]string, 0, len(left)+core.NumPlayers)
	for i, beads := range left {
		l := strings.Repeat(" ", width-beads) + strings.Repeat("*", beads)
		r := strings.Repeat("*", right[len(right)-1-i])
		lines = append(lines, l+" "+r)
	}
	for p := 0; p < core.NumPlayers; p++ {
		lines = append(lines, fmt.Sprintf("Player %d: %d", p, snap.Stores[p]))
	}
	return strings.Join(lines, "\n")
}

func renderNumeric(snap core.Snapshot) string {
	var sb strings.Builder
	holes := len(snap.Rows[0])

	sb.WriteString("hole   ")
	for h := 0; h < holes; h++ {
		sb.WriteString(fmt.Sprintf("%4d", h))
	}
	sb.WriteString("   store\n")

	for p := 0; p < core.NumPlayers; p++ {
		marker := " "
		if snap.Winner == core.NoWinner && snap.Player == p {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%sside %d", marker, p))
		color := getPlayerColor(p)
		for _, beads := range snap.Rows[p] {
			if beads == 0 {
				sb.WriteString(ColorGray + fmt.Sprintf("%4d", beads) + ColorReset)
				continue
			}
			sb.WriteString(color + fmt.Sprintf("%4d", beads) + ColorReset)
		}
		sb.WriteString(color + fmt.Sprintf("%8d", snap.Stores[p]) + ColorReset + "\n")
	}

	if snap.Winner != core.NoWinner {
		sb.WriteString(ColorYellow + fmt.Sprintf("winner: player %d", snap.Winner) + ColorReset + "\n")
	}
	return sb.String()
}

func getPlayerColor(playerID int) string {
	if playerID >= 0 && playerID < len(playerColors) {
		return playerColors[playerID]
	}
	return ColorReset
}
