package engine

import (
	"time"

	"chesscore/board"
)

// SearchLimits configures the optional resource bounds on a search.
// Every field's zero value means "unset", and an unset limit is never
// checked.
type SearchLimits struct {
	// Depth is the search depth in plies.
	Depth int
	// Nodes stops the search once this many nodes have been visited.
	Nodes uint64
	// MoveTime is a hard budget for this single move.
	MoveTime time.Duration

	// Remaining clock time and increment per side. When MoveTime is
	// unset, the mover's clock converts into a soft budget.
	WhiteTime      time.Duration
	BlackTime      time.Duration
	WhiteIncrement time.Duration
	BlackIncrement time.Duration
}

// budgetFor derives a time budget for the side to move from its clock:
// a twentieth of the remaining time plus half the increment, floored at
// a few milliseconds so a flagging clock still produces a move.
func (l SearchLimits) budgetFor(color board.Color) time.Duration {
	remaining, increment := l.WhiteTime, l.WhiteIncrement
	if color == board.Black {
		remaining, increment = l.BlackTime, l.BlackIncrement
	}
	if remaining == 0 {
		return 0
	}
	return Max(remaining/20+increment/2, 5*time.Millisecond)
}
