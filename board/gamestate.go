package board

// GameState is the cached outcome classification of a position.
// Unknown is the invalidation sentinel: MakeMove resets the cache to
// Unknown and State recomputes on demand, because the computation
// regenerates the full legal move list.
type GameState uint8

const (
	Unknown GameState = iota
	InProgress
	// CheckmateWhite means white delivered mate (black to move, no moves, in check).
	CheckmateWhite
	CheckmateBlack
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
)

func (gs GameState) String() string {
	switch gs {
	case InProgress:
		return "in progress"
	case CheckmateWhite:
		return "checkmate (white wins)"
	case CheckmateBlack:
		return "checkmate (black wins)"
	case Stalemate:
		return "stalemate"
	case ThreefoldRepetition:
		return "draw by threefold repetition"
	case FiftyMoveRule:
		return "draw by fifty-move rule"
	}
	return "unknown"
}

// IsTerminal reports whether the game is over in this state.
func (gs GameState) IsTerminal() bool {
	return gs != Unknown && gs != InProgress
}

// State returns the game state of the current position, computing and
// caching it if the cache was invalidated.
func (b *Board) State() GameState {
	if b.state == Unknown {
		b.state = b.computeState()
	}
	return b.state
}

func (b *Board) computeState() GameState {
	if len(b.GenerateLegalMoves()) == 0 {
		if b.InCheck(b.turn) {
			if b.turn == White {
				return CheckmateBlack
			}
			return CheckmateWhite
		}
		return Stalemate
	}
	if b.HalfmoveClock() >= 100 {
		return FiftyMoveRule
	}
	if b.isThreefoldRepetition() {
		return ThreefoldRepetition
	}
	return InProgress
}

// isThreefoldRepetition always reports false. Repetition tracking is
// deliberately not implemented.
func (b *Board) isThreefoldRepetition() bool { return false }
