package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"chesscore/board"
)

const (
	// DefaultDepth is the search depth used when no depth limit is set.
	DefaultDepth = 4
	// MaxDepth caps a configured depth to keep the recursion bounded.
	MaxDepth = 64
)

// Result is the outcome of one root search. Found is false when the
// search was stopped before any root move finished, in which case Best
// and Score are meaningless and the caller must handle the empty
// result.
type Result struct {
	Best  board.Ply
	Score Score
	Nodes uint64
	Found bool
}

// Search runs depth-bounded alpha-beta over a board it exclusively
// owns for the duration of Run. The transposition table may be shared
// between searches; board and history never are.
type Search struct {
	TT      *TransTable
	Eval    Evaluator
	Zobrist *board.ZobristTable
	Limits  SearchLimits

	stop    <-chan struct{}
	running bool
	nodes   uint64
	started time.Time
	budget  time.Duration
}

// NewSearch wires a search to its table, evaluator and Zobrist table.
func NewSearch(tt *TransTable, eval Evaluator, zt *board.ZobristTable) *Search {
	return &Search{TT: tt, Eval: eval, Zobrist: zt}
}

// Run searches the position and returns the best root move found.
// Scores are from the root mover's point of view. The stop channel may
// be nil; closing it (or sending on it) requests cooperative
// cancellation, which is observed between recursive calls — the best
// move found so far is kept.
//
// Every root move is visited exactly once with a full window; alpha
// beta pruning only happens below the root.
func (s *Search) Run(b *board.Board, stop <-chan struct{}) Result {
	s.stop = stop
	s.running = true
	s.nodes = 0
	s.started = time.Now()
	s.budget = s.Limits.MoveTime
	if s.budget == 0 {
		s.budget = s.Limits.budgetFor(b.Turn())
	}

	depth := s.Limits.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}
	depth = Min(depth, MaxDepth)

	result := Result{Score: -MaxScore}
	key := s.Zobrist.KeyFor(b)
	orderer := s.ordererFor(key, b.GenerateLegalMoves())
	for {
		m, ok := orderer.Next()
		if !ok {
			break
		}
		b.MakeMove(m)
		score := s.alphaBetaMin(b, -MaxScore, MaxScore, depth-1)
		b.UnmakeMove()
		if !s.running {
			// The interrupted subtree collapsed to static evaluations;
			// its score is not comparable. Keep what we had.
			break
		}
		if !result.Found || score > result.Score {
			result.Best, result.Score, result.Found = m, score, true
		}
	}
	result.Nodes = s.nodes

	if result.Found {
		s.TT.Insert(key, TTEntry{
			Score: result.Score,
			Depth: int8(depth),
			Bound: BoundExact,
			Best:  result.Best,
		})
	}

	evt := log.Debug().
		Int("depth", depth).
		Uint64("nodes", s.nodes).
		Dur("elapsed", time.Since(s.started)).
		Int("tt_used_permille", s.TT.CapacityUsed())
	if result.Found {
		evt = evt.Str("best", result.Best.Notation()).Int32("score", int32(result.Score))
	}
	evt.Msg("search finished")

	return result
}

// alphaBetaMax scores a node where the root side is to move; it picks
// the child with the highest score. alphaBetaMin is its mirror. The two
// are kept as separate functions rather than folded into negamax.
func (s *Search) alphaBetaMax(b *board.Board, alpha, beta Score, depth int) Score {
	s.pollStop()
	s.nodes++
	if depth <= 0 || !s.running || s.limitBreached() {
		return s.Eval.Evaluate(b)
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if b.InCheck(b.Turn()) {
			return -CheckmateScore
		}
		return DrawScore
	}

	key := s.Zobrist.KeyFor(b)
	orderer := s.ordererFor(key, moves)
	var best board.Ply
	raisedAlpha := false
	for {
		m, ok := orderer.Next()
		if !ok {
			break
		}
		b.MakeMove(m)
		score := s.alphaBetaMin(b, alpha, beta, depth-1)
		b.UnmakeMove()
		if score >= beta {
			s.TT.Insert(key, TTEntry{Score: beta, Depth: int8(depth), Bound: BoundLower, Best: m})
			return beta
		}
		if score > alpha {
			alpha = score
			best = m
			raisedAlpha = true
		}
	}

	bound := BoundUpper
	if raisedAlpha {
		bound = BoundExact
	}
	s.TT.Insert(key, TTEntry{Score: alpha, Depth: int8(depth), Bound: bound, Best: best})
	return alpha
}

func (s *Search) alphaBetaMin(b *board.Board, alpha, beta Score, depth int) Score {
	s.pollStop()
	s.nodes++
	if depth <= 0 || !s.running || s.limitBreached() {
		// The evaluator scores for the side to move, which is the
		// minimizing side here; negate back to the root perspective.
		return -s.Eval.Evaluate(b)
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if b.InCheck(b.Turn()) {
			return CheckmateScore
		}
		return DrawScore
	}

	key := s.Zobrist.KeyFor(b)
	orderer := s.ordererFor(key, moves)
	var best board.Ply
	loweredBeta := false
	for {
		m, ok := orderer.Next()
		if !ok {
			break
		}
		b.MakeMove(m)
		score := s.alphaBetaMax(b, alpha, beta, depth-1)
		b.UnmakeMove()
		if score <= alpha {
			s.TT.Insert(key, TTEntry{Score: alpha, Depth: int8(depth), Bound: BoundUpper, Best: m})
			return alpha
		}
		if score < beta {
			beta = score
			best = m
			loweredBeta = true
		}
	}

	bound := BoundLower
	if loweredBeta {
		bound = BoundExact
	}
	s.TT.Insert(key, TTEntry{Score: beta, Depth: int8(depth), Bound: bound, Best: best})
	return beta
}

// ordererFor builds the move orderer, seeding it with the table's
// remembered best move when the position has one.
func (s *Search) ordererFor(key board.ZKey, moves []board.Ply) *MoveOrderer {
	if entry, ok := s.TT.Get(key); ok {
		return NewMoveOrderer(moves, entry.Best, true)
	}
	return NewMoveOrderer(moves, board.Ply{}, false)
}

// pollStop drains the stop channel without blocking; once a stop
// arrives, every subsequent recursive call short-circuits to static
// evaluation and the recursion unwinds.
func (s *Search) pollStop() {
	if s.stop == nil || !s.running {
		return
	}
	select {
	case <-s.stop:
		s.running = false
	default:
	}
}

// limitBreached checks the configured node and time limits. Unset
// limits are never checked. A breach is a hard stop of the recursion,
// not a queued event.
func (s *Search) limitBreached() bool {
	if s.Limits.Nodes > 0 && s.nodes >= s.Limits.Nodes {
		return true
	}
	if s.budget > 0 && time.Since(s.started) >= s.budget {
		return true
	}
	return false
}
