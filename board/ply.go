package board

// Ply describes one half-move together with everything needed to
// reverse it exactly. HalfmoveClock and Rights are snapshots of the
// board state *after* the move applied; unmake restores them from the
// ply below this one in history rather than recomputing.
type Ply struct {
	Start Square
	Dest  Square
	Piece Piece // the moving piece, color included

	Captured  Piece // NoPiece for quiet moves
	Promotion Piece // NoPiece unless a pawn promotes

	Castles    bool
	EnPassant  bool
	DoublePush bool

	HalfmoveClock uint16
	Rights        CastlingRights
}

// SentinelPly is the default move that seeds a fresh history stack: a
// no-op white pawn "move" on a1 carrying full castling rights and a
// zero halfmove clock, so the bottom of the stack always has a snapshot
// to restore from.
func SentinelPly() Ply {
	return Ply{
		Start:  NewSquare(0, 0),
		Dest:   NewSquare(0, 0),
		Piece:  WhitePawn,
		Rights: CastlingAll,
	}
}

// IsCapture reports whether the ply removes an enemy piece.
func (p Ply) IsCapture() bool { return p.Captured != NoPiece }

// Notation renders the move in coordinate notation: "e2e4", with a
// lowercase piece letter appended for promotions ("e7e8q").
func (p Ply) Notation() string {
	s := p.Start.String() + p.Dest.String()
	switch p.Promotion.Type() {
	case PieceTypeQueen:
		s += "q"
	case PieceTypeRook:
		s += "r"
	case PieceTypeBishop:
		s += "b"
	case PieceTypeKnight:
		s += "n"
	}
	return s
}

func (p Ply) String() string { return p.Notation() }
