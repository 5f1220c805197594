package board

import (
	"fmt"
	"strings"
)

// Board is the full game position: piece placement, side to move,
// clocks, and the history stack of applied plies. The top of history is
// the most recent move; its snapshot fields are the current halfmove
// clock and castling rights. A sentinel ply seeds every fresh board so
// the stack is never empty.
//
// A Board is exclusively owned by its user; nothing here is safe for
// concurrent mutation.
type Board struct {
	turn     Color
	fullmove uint16
	state    GameState
	epFile   int8 // capturable file after a double push, -1 otherwise

	bitboards PieceBitboards
	mailbox   [64]Piece

	history []Ply
}

// EmptyBoard returns a board with no pieces, white to move, full
// castling rights on the sentinel, and an empty en-passant file.
func EmptyBoard() *Board {
	return &Board{
		turn:     White,
		fullmove: 1,
		epFile:   -1,
		history:  []Ply{SentinelPly()},
	}
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	return ParseFen(FENStartPos)
}

// Turn returns the side to move.
func (b *Board) Turn() Color { return b.turn }

// FullmoveNumber returns the fullmove counter, starting at 1.
func (b *Board) FullmoveNumber() uint16 { return b.fullmove }

// HalfmoveClock reads the clock snapshot off the top of history.
func (b *Board) HalfmoveClock() uint16 {
	return b.history[len(b.history)-1].HalfmoveClock
}

// CastlingRights reads the rights snapshot off the top of history.
func (b *Board) CastlingRights() CastlingRights {
	return b.history[len(b.history)-1].Rights
}

// EnPassantFile returns the file (0-7) a pawn may capture onto en
// passant, or -1 when there is none.
func (b *Board) EnPassantFile() int8 { return b.epFile }

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.mailbox[sq] }

// Bitboards exposes the placement model, read-only by convention.
func (b *Board) Bitboards() *PieceBitboards { return &b.bitboards }

// HistoryLen returns the number of plies applied, excluding the sentinel.
func (b *Board) HistoryLen() int { return len(b.history) - 1 }

// LastPly returns the most recently applied ply and false if none has
// been applied yet.
func (b *Board) LastPly() (Ply, bool) {
	if len(b.history) <= 1 {
		return Ply{}, false
	}
	return b.history[len(b.history)-1], true
}

// Copy returns a deep copy with its own history stack.
func (b *Board) Copy() *Board {
	nb := *b
	nb.history = make([]Ply, len(b.history))
	copy(nb.history, b.history)
	return &nb
}

func (b *Board) addPiece(p Piece, sq Square) {
	b.bitboards.AddPiece(p.Color(), p.Type(), sq)
	b.mailbox[sq] = p
}

func (b *Board) removePiece(p Piece, sq Square) {
	b.bitboards.RemovePiece(p.Color(), p.Type(), sq)
	b.mailbox[sq] = NoPiece
}

// epCaptureSquare is the square of the pawn removed by an en-passant
// capture: directly behind the capture destination from the mover's
// point of view.
func epCaptureSquare(p Ply) Square {
	if p.Piece.Color() == White {
		return p.Dest - 8
	}
	return p.Dest + 8
}

// castleRookSquares maps a castling king destination to the rook's
// relocation. Any other destination is unreachable given correct move
// generation, so it panics.
func castleRookSquares(kingDest Square) (from, to Square) {
	rank := kingDest.Rank()
	switch kingDest.File() {
	case 6: // kingside: h-file rook to f-file
		return NewSquare(rank, 7), NewSquare(rank, 5)
	case 2: // queenside: a-file rook to d-file
		return NewSquare(rank, 0), NewSquare(rank, 3)
	}
	panic(fmt.Sprintf("board: invalid castling destination %v", kingDest))
}

// rookHomeRight returns the castling right tied to a rook home square,
// or CastlingNone for any other square.
func rookHomeRight(sq Square) CastlingRights {
	switch sq {
	case NewSquare(0, 0):
		return CastlingWhiteQ
	case NewSquare(0, 7):
		return CastlingWhiteK
	case NewSquare(7, 0):
		return CastlingBlackQ
	case NewSquare(7, 7):
		return CastlingBlackK
	}
	return CastlingNone
}

// revokedRights computes which castling flags this ply revokes: moving
// the king (or castling) drops both of the mover's rights, moving a
// rook off its home square drops that side's right, and capturing a
// rook on its home square drops the opponent's.
func revokedRights(p Ply) CastlingRights {
	var mask CastlingRights
	if p.Castles || p.Piece.Type() == PieceTypeKing {
		if p.Piece.Color() == White {
			mask |= CastlingWhiteK | CastlingWhiteQ
		} else {
			mask |= CastlingBlackK | CastlingBlackQ
		}
	}
	if p.Piece.Type() == PieceTypeRook {
		mask |= rookHomeRight(p.Start)
	}
	if p.Captured.Type() == PieceTypeRook {
		mask |= rookHomeRight(p.Dest)
	}
	return mask
}

// MakeMove applies a ply. The ply's snapshot fields are filled in here
// from the current position before it is pushed onto history; callers
// never pre-populate them. Legality is not checked.
func (b *Board) MakeMove(p Ply) {
	prev := b.history[len(b.history)-1]

	p.Rights = prev.Rights
	if p.Piece.Type() == PieceTypePawn || p.IsCapture() {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock = prev.HalfmoveClock + 1
	}

	if p.DoublePush {
		b.epFile = int8(p.Dest.File())
	} else {
		b.epFile = -1
	}

	b.removePiece(p.Piece, p.Start)
	if p.Captured != NoPiece {
		if p.EnPassant {
			b.removePiece(p.Captured, epCaptureSquare(p))
		} else {
			b.removePiece(p.Captured, p.Dest)
		}
	}
	b.addPiece(p.Piece, p.Dest)

	if p.Promotion != NoPiece {
		b.removePiece(p.Piece, p.Dest)
		b.addPiece(p.Promotion, p.Dest)
	}

	if p.Castles {
		rookFrom, rookTo := castleRookSquares(p.Dest)
		rook := PieceFromType(p.Piece.Color(), PieceTypeRook)
		b.removePiece(rook, rookFrom)
		b.addPiece(rook, rookTo)
	}

	p.Rights = p.Rights.Revoke(revokedRights(p))

	b.state = Unknown
	b.turn = b.turn.Other()
	if b.turn == White {
		b.fullmove++
	}
	b.history = append(b.history, p)
}

// UnmakeMove pops the top ply and reverses it exactly. The halfmove
// clock and castling rights come back for free: they live on the ply
// now at the top of the stack. Unmaking past the sentinel is a
// programming error and panics.
func (b *Board) UnmakeMove() {
	if len(b.history) <= 1 {
		panic("board: unmake with empty history")
	}
	p := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	if p.Castles {
		rookFrom, rookTo := castleRookSquares(p.Dest)
		rook := PieceFromType(p.Piece.Color(), PieceTypeRook)
		b.removePiece(rook, rookTo)
		b.addPiece(rook, rookFrom)
	}

	if p.Promotion != NoPiece {
		b.removePiece(p.Promotion, p.Dest)
		b.addPiece(p.Piece, p.Dest)
	}

	b.removePiece(p.Piece, p.Dest)
	b.addPiece(p.Piece, p.Start)

	if p.Captured != NoPiece {
		if p.EnPassant {
			b.addPiece(p.Captured, epCaptureSquare(p))
		} else {
			b.addPiece(p.Captured, p.Dest)
		}
	}

	top := b.history[len(b.history)-1]
	if top.DoublePush {
		b.epFile = int8(top.Dest.File())
	} else {
		b.epFile = -1
	}

	if b.turn == White {
		b.fullmove--
	}
	b.turn = b.turn.Other()

	// An unmade position was mid-game by construction.
	b.state = InProgress
}

// FindMove matches a coordinate-notation string ("e2e4", "e7e8q")
// against the legal moves of the current position. There is no way to
// construct a move from arbitrary coordinates that bypasses legality.
func (b *Board) FindMove(notation string) (Ply, error) {
	for _, m := range b.GenerateLegalMoves() {
		if m.Notation() == notation {
			return m, nil
		}
	}
	return Ply{}, fmt.Errorf("move %q not found in legal moves", notation)
}

// String renders an ASCII diagram, rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.mailbox[NewSquare(uint8(rank), uint8(file))]
			if p == NoPiece {
				sb.WriteString(" .")
			} else {
				sb.WriteByte(' ')
				sb.WriteRune(charFromPiece(p))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
