package board

import "testing"

func TestParseStartingPosition(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	if b.Turn() != White {
		t.Fatal("wrong side to move")
	}
	if b.CastlingRights() != CastlingAll {
		t.Fatalf("rights: got %v", b.CastlingRights())
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("clocks: %d / %d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	e1, _ := SquareFromString("e1")
	d8, _ := SquareFromString("d8")
	if b.PieceAt(e1) != WhiteKing || b.PieceAt(d8) != BlackQueen {
		t.Fatal("wrong piece placement")
	}
	if got := b.Bitboards().AllPieces().PopCount(); got != 32 {
		t.Fatalf("piece count: got %d", got)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1",
		"8/8/8/8/8/8/8/k1K5 b - - 99 120",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
		if got := b.ToFEN(); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",          // missing fields
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // seven ranks
		"rnbqkbnr/ppppXppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KZkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq zz 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // nine squares in a rank
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) accepted malformed input", fen)
		}
	}
}

func TestParseFenPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("ParseFen did not panic on malformed input")
		}
	}()
	ParseFen("not a fen")
}

func TestEnPassantTargetSeedsHistory(t *testing.T) {
	b := ParseFen("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if b.EnPassantFile() != 3 {
		t.Fatalf("en-passant file: got %d want 3", b.EnPassantFile())
	}
	last, ok := b.LastPly()
	if !ok {
		t.Fatal("no synthetic ply on history")
	}
	if !last.DoublePush || last.Piece != BlackPawn || last.Dest.String() != "d5" {
		t.Fatalf("synthetic ply wrong: %+v", last)
	}

	// Unmaking the first real move must re-expose the en-passant file
	// by reading the synthetic ply.
	m, err := b.FindMove("h1h2")
	if err != nil {
		t.Fatal(err)
	}
	b.MakeMove(m)
	if b.EnPassantFile() != -1 {
		t.Fatal("en-passant file survived an unrelated move")
	}
	b.UnmakeMove()
	if b.EnPassantFile() != 3 {
		t.Fatal("unmake did not restore the en-passant file")
	}
}

func TestEnPassantTargetSideMismatch(t *testing.T) {
	// Target on rank 3 means white just pushed, so black must be the
	// side to move.
	if _, err := ParseFEN("k7/8/8/3pP3/8/8/8/7K w - d3 0 2"); err == nil {
		t.Fatal("accepted an en-passant target inconsistent with the mover")
	}
}
