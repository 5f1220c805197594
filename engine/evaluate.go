package engine

import (
	"math"

	"chesscore/board"
)

// Score is a signed position evaluation. Evaluator implementations
// return it from the perspective of the side to move: positive means
// the mover stands better.
type Score int32

const (
	MaxScore Score = math.MaxInt32

	// KingValue dwarfs every possible material imbalance, so any line
	// that loses the king loses the comparison.
	KingValue Score = MaxScore / 2

	// CheckmateScore is what a mated side scores; it doubles as the
	// magnitude returned for mate lines in search.
	CheckmateScore Score = KingValue

	DrawScore Score = 0
)

// pieceValues is indexed by PieceType.
var pieceValues = [7]Score{0, 100, 300, 300, 500, 900, KingValue}

// Evaluator is the pluggable static evaluation strategy consumed by the
// search.
type Evaluator interface {
	Evaluate(b *board.Board) Score
}

// MaterialEvaluator scores pure material: standard piece values added
// for the mover, subtracted for the opponent, accumulated with
// saturation so the king values cannot overflow.
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(b *board.Board) Score {
	mover := b.Turn()
	bb := b.Bitboards()
	var score Score
	for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
		v := pieceValues[pt]
		for i := bb.PieceSet(mover, pt).PopCount(); i > 0; i-- {
			score = saturatingAdd(score, v)
		}
		for i := bb.PieceSet(mover.Other(), pt).PopCount(); i > 0; i-- {
			score = saturatingAdd(score, -v)
		}
	}
	return score
}

func saturatingAdd(a, b Score) Score {
	sum := a + b
	if b > 0 && sum < a {
		return MaxScore
	}
	if b < 0 && sum > a {
		return -MaxScore
	}
	return sum
}
