package engine

import (
	"unsafe"

	"chesscore/board"
)

// Bound classifies a cached score: the true value, a lower bound from a
// fail-high, or an upper bound from a fail-low. BoundInvalid is the
// zero value and marks an unused slot.
type Bound int8

const (
	BoundInvalid Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

const (
	// DefaultSizeMB is the table budget used when none is configured.
	DefaultSizeMB = 8

	bucketSlots = 4
)

// TTEntry is one cached search result.
type TTEntry struct {
	Score Score
	Depth int8
	Bound Bound
	Best  board.Ply
}

type ttSlot struct {
	key   board.ZKey
	entry TTEntry
}

type bucket [bucketSlots]ttSlot

// TransTable is a fixed-size bucketed cache keyed by Zobrist hash.
// Lookup and insertion scan the 4-slot bucket linearly; buckets are
// small enough that this beats keeping a secondary index. Sharing
// across searches is the caller's concern (wrap in a RWMutex if
// needed); the table itself does no locking.
type TransTable struct {
	buckets     []bucket
	bucketCount uint64
	live        uint64
}

// NewTransTable allocates a table sized to a megabyte budget.
func NewTransTable(sizeMB int) *TransTable {
	tt := &TransTable{}
	tt.Resize(sizeMB)
	return tt
}

// Resize drops every entry and reallocates to the new budget:
// floor(sizeMB * 2^20 / (4 * sizeof(TTEntry))) buckets, minimum one.
func (tt *TransTable) Resize(sizeMB int) {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	bucketBytes := entrySize * bucketSlots
	count := uint64(sizeMB) * 1024 * 1024 / bucketBytes
	count = Max(count, 1)
	tt.bucketCount = count
	tt.buckets = make([]bucket, count)
	tt.live = 0
}

func (tt *TransTable) bucketFor(key board.ZKey) *bucket {
	return &tt.buckets[key.Hash%tt.bucketCount]
}

// Get scans the key's bucket for a matching entry.
func (tt *TransTable) Get(key board.ZKey) (TTEntry, bool) {
	bkt := tt.bucketFor(key)
	for i := range bkt {
		if bkt[i].entry.Bound != BoundInvalid && bkt[i].key.Equal(key) {
			return bkt[i].entry, true
		}
	}
	return TTEntry{}, false
}

// Insert stores the entry in the key's bucket: an unused slot if one
// exists, otherwise it evicts the slot with the smallest depth (first
// found on ties). The evicted entry is returned so the caller can keep
// its live-entry accounting straight.
func (tt *TransTable) Insert(key board.ZKey, entry TTEntry) (evicted TTEntry, didEvict bool) {
	bkt := tt.bucketFor(key)
	for i := range bkt {
		if bkt[i].entry.Bound == BoundInvalid {
			bkt[i] = ttSlot{key: key, entry: entry}
			tt.live++
			return TTEntry{}, false
		}
	}

	victim := 0
	for i := 1; i < bucketSlots; i++ {
		if bkt[i].entry.Depth < bkt[victim].entry.Depth {
			victim = i
		}
	}
	evicted = bkt[victim].entry
	bkt[victim] = ttSlot{key: key, entry: entry}
	return evicted, true
}

// Live returns the number of occupied slots.
func (tt *TransTable) Live() uint64 { return tt.live }

// CapacityUsed reports occupied slots per mille of total capacity; it
// saturates at 1000 once every slot has been filled.
func (tt *TransTable) CapacityUsed() int {
	total := tt.bucketCount * bucketSlots
	return int(tt.live * 1000 / total)
}
