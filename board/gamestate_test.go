package board

import "testing"

func TestFoolsMateIsCheckmate(t *testing.T) {
	b := NewBoard()
	for _, notation := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := b.FindMove(notation)
		if err != nil {
			t.Fatalf("%s: %v", notation, err)
		}
		b.MakeMove(m)
	}
	if got := b.State(); got != CheckmateBlack {
		t.Fatalf("fool's mate: got %v want %v", got, CheckmateBlack)
	}
}

func TestStalemate(t *testing.T) {
	// Black king in the corner with no moves and no check.
	b := ParseFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := b.State(); got != Stalemate {
		t.Fatalf("got %v want %v", got, Stalemate)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	b := ParseFen("8/8/8/4k3/8/4K3/8/7R w - - 100 80")
	if got := b.State(); got != FiftyMoveRule {
		t.Fatalf("got %v want %v", got, FiftyMoveRule)
	}
}

func TestCheckmateOutranksClock(t *testing.T) {
	// Mate on the board with the clock already expired: mate wins.
	b := ParseFen("6k1/5ppp/8/8/8/8/8/R5K1 w - - 99 80")
	m, err := b.FindMove("a1a8")
	if err != nil {
		t.Fatal(err)
	}
	b.MakeMove(m)
	if got := b.State(); got != CheckmateWhite {
		t.Fatalf("got %v want %v", got, CheckmateWhite)
	}
}

func TestInProgressAndCacheInvalidation(t *testing.T) {
	b := NewBoard()
	if got := b.State(); got != InProgress {
		t.Fatalf("start position: got %v", got)
	}

	// The cached value must be dropped by every MakeMove.
	for _, notation := range []string{"f2f3", "e7e5", "g2g4"} {
		m, err := b.FindMove(notation)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
		if got := b.State(); got != InProgress {
			t.Fatalf("after %s: got %v", notation, got)
		}
	}
	m, err := b.FindMove("d8h4")
	if err != nil {
		t.Fatal(err)
	}
	b.MakeMove(m)
	if got := b.State(); got != CheckmateBlack {
		t.Fatalf("after mate: got %v", got)
	}
	b.UnmakeMove()
	if got := b.State(); got != InProgress {
		t.Fatalf("after unmake: got %v", got)
	}
}

func TestRepetitionIsNotDetected(t *testing.T) {
	// Shuffle knights back and forth twice; a real threefold detector
	// would flag this, ours deliberately does not.
	b := NewBoard()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, notation := range cycle {
			m, err := b.FindMove(notation)
			if err != nil {
				t.Fatal(err)
			}
			b.MakeMove(m)
		}
	}
	if got := b.State(); got != InProgress {
		t.Fatalf("got %v want %v", got, InProgress)
	}
}
