package engine

import "chesscore/board"

type scoredMove struct {
	ply   board.Ply
	score uint16
}

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
// Indexed [victim type][attacker type].
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

// Ordering offsets. The TT best move outranks everything, promotions
// sit above captures, and quiet moves score zero.
const (
	ttMoveScore     uint16 = 25000
	promotionOffset uint16 = 20000
	captureOffset   uint16 = 15000
)

// MoveOrderer yields moves best-first, one lazy selection-sort step per
// Next call: only the unexamined suffix is scanned for the maximum and
// swapped forward. A beta cutoff usually abandons the list early, so
// sorting it fully up front would be wasted work.
type MoveOrderer struct {
	moves []scoredMove
	index int
}

// NewMoveOrderer scores the move list. ttBest, when hasTTBest is set,
// is the transposition table's stored best move for this position and
// is tried first.
func NewMoveOrderer(moves []board.Ply, ttBest board.Ply, hasTTBest bool) *MoveOrderer {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var score uint16
		switch {
		case hasTTBest && m == ttBest:
			score = ttMoveScore
		case m.Promotion != board.NoPiece:
			score = promotionOffset + uint16(pieceValues[m.Promotion.Type()])
		case m.IsCapture():
			score = captureOffset + mvvLva[m.Captured.Type()][m.Piece.Type()]
		}
		scored[i] = scoredMove{ply: m, score: score}
	}
	return &MoveOrderer{moves: scored}
}

// Len returns the total number of moves in the list.
func (mo *MoveOrderer) Len() int { return len(mo.moves) }

// Next returns the best not-yet-returned move, or false when the list
// is exhausted. Ties keep their original generation order.
func (mo *MoveOrderer) Next() (board.Ply, bool) {
	if mo.index >= len(mo.moves) {
		return board.Ply{}, false
	}
	best := mo.index
	for i := mo.index + 1; i < len(mo.moves); i++ {
		if mo.moves[i].score > mo.moves[best].score {
			best = i
		}
	}
	mo.moves[mo.index], mo.moves[best] = mo.moves[best], mo.moves[mo.index]
	m := mo.moves[mo.index].ply
	mo.index++
	return m, true
}
