package board

import "testing"

func TestRankFileMasks(t *testing.T) {
	if RankMask(0) != 0xFF {
		t.Fatalf("rank 1 mask: got %x", uint64(RankMask(0)))
	}
	if RankMask(7) != Rank8BB {
		t.Fatalf("rank 8 mask: got %x", uint64(RankMask(7)))
	}
	if FileMask(0) != FileABB {
		t.Fatalf("file a mask: got %x", uint64(FileMask(0)))
	}
	if FileMask(7) != FileHBB {
		t.Fatalf("file h mask: got %x", uint64(FileMask(7)))
	}
	for f := uint8(0); f < 8; f++ {
		if FileMask(f).PopCount() != 8 {
			t.Fatalf("file %d mask has %d bits", f, FileMask(f).PopCount())
		}
	}
}

func TestDiagonalMask(t *testing.T) {
	// d4 sits on the long a1-h8 diagonal (8 squares) and on the
	// a7-g1 antidiagonal (7 squares); the square itself is shared.
	mask := DiagonalMask(NewSquare(3, 3))
	if got := mask.PopCount(); got != 14 {
		t.Fatalf("d4 diagonal mask: got %d squares, want 14", got)
	}
	for _, sq := range []string{"a1", "h8", "a7", "g1", "d4"} {
		s, _ := SquareFromString(sq)
		if !mask.Has(s) {
			t.Errorf("d4 diagonal mask missing %s", sq)
		}
	}
	if e4, _ := SquareFromString("e4"); mask.Has(e4) {
		t.Error("d4 diagonal mask should not contain e4")
	}
}

func TestShiftsDoNotWrap(t *testing.T) {
	h4, _ := SquareFromString("h4")
	if got := h4.Bit().ShiftEast(); got != 0 {
		t.Fatalf("shifting h4 east wrapped to %v", got.BitscanForward())
	}
	a4, _ := SquareFromString("a4")
	if got := a4.Bit().ShiftWest(); got != 0 {
		t.Fatalf("shifting a4 west wrapped to %v", got.BitscanForward())
	}
	e4, _ := SquareFromString("e4")
	e5, _ := SquareFromString("e5")
	if got := e4.Bit().ShiftNorth(); got != e5.Bit() {
		t.Fatal("e4 shifted north is not e5")
	}
}

func TestDropForward(t *testing.T) {
	bb := RankMask(2)
	var seen []Square
	for bb != 0 {
		seen = append(seen, bb.DropForward())
	}
	if len(seen) != 8 {
		t.Fatalf("decomposed rank 3 into %d squares", len(seen))
	}
	for i, sq := range seen {
		if sq != NewSquare(2, uint8(i)) {
			t.Fatalf("square %d: got %v", i, sq)
		}
	}
}

func TestBitscanEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("BitscanForward on empty bitboard did not panic")
		}
	}()
	EmptyBitboard.BitscanForward()
}
