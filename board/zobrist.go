package board

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// zobristSeed fixes the PRNG so every table is identical across runs;
// saved or replayed games must hash the same way forever.
const zobristSeed uint64 = 0xBEEFCAFE

// ZobristTable holds the random constants used to fingerprint a
// position: one per (color, piece type, square), one per castling
// right, one per en-passant file, and one for "white to move". Tables
// are constructed explicitly and passed where needed; there is no
// process-wide lazily initialized instance.
type ZobristTable struct {
	pieces    [2][6][64]uint64
	castling  [4]uint64
	enPassant [8]uint64
	whiteTurn uint64
}

// NewZobristTable builds the table from the fixed seed. Two tables
// built by this function are always identical.
func NewZobristTable() *ZobristTable {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], zobristSeed)
	rng := frand.NewCustom(key[:], 1024, 12)

	next := func() uint64 {
		var buf [8]byte
		rng.Read(buf[:])
		return binary.LittleEndian.Uint64(buf[:])
	}

	zt := &ZobristTable{}
	for sq := 0; sq < 64; sq++ {
		for pt := 0; pt < 6; pt++ {
			zt.pieces[White][pt][sq] = next()
			zt.pieces[Black][pt][sq] = next()
		}
	}
	for i := range zt.castling {
		zt.castling[i] = next()
	}
	for i := range zt.enPassant {
		zt.enPassant[i] = next()
	}
	zt.whiteTurn = next()
	return zt
}

// ZKey identifies a position by its 64-bit Zobrist hash. The castling
// and en-passant fields are carried along for context but are not part
// of key identity: Equal compares hashes only, so two keys that differ
// only in those fields are the same key.
type ZKey struct {
	Hash   uint64
	Rights CastlingRights
	EPFile int8
}

// Equal compares the hashes and nothing else.
func (k ZKey) Equal(o ZKey) bool { return k.Hash == o.Hash }

// KeyFor recomputes the full hash of the position from scratch by
// XOR-folding every feature. No incremental update happens on
// make/unmake; callers rehash when they need a key.
func (zt *ZobristTable) KeyFor(b *Board) ZKey {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.mailbox[sq]
		if p == NoPiece {
			continue
		}
		h ^= zt.pieces[p.Color()][p.Type()-1][sq]
	}

	rights := b.CastlingRights()
	for i, mask := range [4]CastlingRights{CastlingWhiteK, CastlingWhiteQ, CastlingBlackK, CastlingBlackQ} {
		if rights.Has(mask) {
			h ^= zt.castling[i]
		}
	}
	if b.epFile >= 0 {
		h ^= zt.enPassant[b.epFile]
	}
	if b.turn == White {
		h ^= zt.whiteTurn
	}
	return ZKey{Hash: h, Rights: rights, EPFile: b.epFile}
}
