package engine

import (
	"testing"

	"chesscore/board"
)

// keysForBucket builds n distinct keys that all land in the same bucket.
func keysForBucket(tt *TransTable, n int) []board.ZKey {
	keys := make([]board.ZKey, n)
	for i := range keys {
		keys[i] = board.ZKey{Hash: 7 + uint64(i)*tt.bucketCount}
	}
	return keys
}

func TestInsertFillsInvalidSlotsFirst(t *testing.T) {
	tt := NewTransTable(1)
	keys := keysForBucket(tt, bucketSlots)
	for i, key := range keys {
		evicted, didEvict := tt.Insert(key, TTEntry{Depth: int8(i + 1), Bound: BoundExact})
		if didEvict {
			t.Fatalf("insert %d evicted %+v with free slots left", i, evicted)
		}
	}
	if tt.Live() != bucketSlots {
		t.Fatalf("live: got %d want %d", tt.Live(), bucketSlots)
	}
	for i, key := range keys {
		entry, ok := tt.Get(key)
		if !ok || entry.Depth != int8(i+1) {
			t.Fatalf("key %d not retrievable after fill", i)
		}
	}
}

func TestEvictionPicksSmallestDepth(t *testing.T) {
	tt := NewTransTable(1)
	keys := keysForBucket(tt, bucketSlots+1)
	depths := []int8{3, 1, 4, 2}
	for i := 0; i < bucketSlots; i++ {
		tt.Insert(keys[i], TTEntry{Depth: depths[i], Bound: BoundExact})
	}

	evicted, didEvict := tt.Insert(keys[bucketSlots], TTEntry{Depth: 9, Bound: BoundExact})
	if !didEvict {
		t.Fatal("full bucket did not evict")
	}
	if evicted.Depth != 1 {
		t.Fatalf("evicted depth %d, want the shallowest (1)", evicted.Depth)
	}
	if _, ok := tt.Get(keys[1]); ok {
		t.Fatal("the shallowest entry is still retrievable")
	}
	for _, i := range []int{0, 2, 3, bucketSlots} {
		if _, ok := tt.Get(keys[i]); !ok {
			t.Fatalf("entry %d lost although it was deeper", i)
		}
	}
	if tt.Live() != bucketSlots {
		t.Fatalf("live count grew past capacity: %d", tt.Live())
	}
}

func TestEvictionTieBreaksFirstFound(t *testing.T) {
	tt := NewTransTable(1)
	keys := keysForBucket(tt, bucketSlots+1)
	for i := 0; i < bucketSlots; i++ {
		tt.Insert(keys[i], TTEntry{Depth: 5, Score: Score(i), Bound: BoundExact})
	}
	evicted, _ := tt.Insert(keys[bucketSlots], TTEntry{Depth: 9, Bound: BoundExact})
	if evicted.Score != 0 {
		t.Fatalf("tie broke to slot with score %d, want the first slot", evicted.Score)
	}
}

func TestCapacityUsedSaturates(t *testing.T) {
	tt := NewTransTable(1)
	if tt.CapacityUsed() != 0 {
		t.Fatalf("fresh table reports %d", tt.CapacityUsed())
	}
	// Hammer one bucket far past its capacity; the counter must not
	// grow past the slots actually filled.
	for _, key := range keysForBucket(tt, 100) {
		tt.Insert(key, TTEntry{Depth: 1, Bound: BoundExact})
	}
	if tt.Live() != bucketSlots {
		t.Fatalf("live: got %d want %d", tt.Live(), bucketSlots)
	}
	if used := tt.CapacityUsed(); used < 0 || used > 1000 {
		t.Fatalf("capacity used out of per-mille range: %d", used)
	}
}

func TestResizeClears(t *testing.T) {
	tt := NewTransTable(1)
	key := board.ZKey{Hash: 99}
	tt.Insert(key, TTEntry{Depth: 3, Bound: BoundExact})
	tt.Resize(2)
	if _, ok := tt.Get(key); ok {
		t.Fatal("entry survived a resize")
	}
	if tt.Live() != 0 {
		t.Fatal("live count survived a resize")
	}
}

func TestGetMatchesOnHashOnly(t *testing.T) {
	tt := NewTransTable(1)
	stored := board.ZKey{Hash: 1234, Rights: board.CastlingAll, EPFile: 4}
	tt.Insert(stored, TTEntry{Depth: 2, Bound: BoundExact, Score: 77})
	probe := board.ZKey{Hash: 1234, Rights: board.CastlingNone, EPFile: -1}
	entry, ok := tt.Get(probe)
	if !ok || entry.Score != 77 {
		t.Fatal("lookup with different auxiliary fields missed")
	}
}
