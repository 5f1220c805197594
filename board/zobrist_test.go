package board

import "testing"

func TestZobristDeterminism(t *testing.T) {
	a := NewZobristTable()
	b := NewZobristTable()
	pos := NewBoard()
	if a.KeyFor(pos).Hash != b.KeyFor(pos).Hash {
		t.Fatal("two tables from the fixed seed disagree")
	}
	k1 := a.KeyFor(pos)
	k2 := a.KeyFor(pos)
	if k1.Hash != k2.Hash {
		t.Fatal("repeated hashing of an unchanged board differs")
	}
}

func TestZobristSensitivity(t *testing.T) {
	zt := NewZobristTable()
	base := zt.KeyFor(ParseFen(FENStartPos)).Hash

	variants := []string{
		// Piece placement changed.
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1",
		// Side to move flipped.
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		// Castling rights reduced.
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Qkq - 0 1",
	}
	for _, fen := range variants {
		if zt.KeyFor(ParseFen(fen)).Hash == base {
			t.Errorf("hash collision with start position for %s", fen)
		}
	}

	// En-passant file folds into the hash.
	with := zt.KeyFor(ParseFen("rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1"))
	without := zt.KeyFor(ParseFen("rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq - 0 1"))
	if with.Hash == without.Hash {
		t.Fatal("en-passant file not hashed")
	}
}

func TestZobristRoundTripsWithMakeUnmake(t *testing.T) {
	zt := NewZobristTable()
	b := NewBoard()
	before := zt.KeyFor(b).Hash
	for _, m := range b.GenerateLegalMoves() {
		b.MakeMove(m)
		b.UnmakeMove()
	}
	if zt.KeyFor(b).Hash != before {
		t.Fatal("hash changed after make/unmake walk")
	}
}

func TestZKeyEqualityIgnoresAuxiliaryFields(t *testing.T) {
	a := ZKey{Hash: 42, Rights: CastlingAll, EPFile: 3}
	b := ZKey{Hash: 42, Rights: CastlingNone, EPFile: -1}
	c := ZKey{Hash: 43, Rights: CastlingAll, EPFile: 3}
	if !a.Equal(b) {
		t.Fatal("keys with equal hashes must compare equal")
	}
	if a.Equal(c) {
		t.Fatal("keys with different hashes must not compare equal")
	}
}
