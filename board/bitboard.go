package board

import "math/bits"

// Bitboard is a set of board squares, one bit per square. Bit 0 is a1,
// bit 7 is h1, bit 56 is a8, bit 63 is h8.
type Bitboard uint64

const (
	EmptyBitboard Bitboard = 0
	FullBitboard  Bitboard = ^Bitboard(0)

	FileABB Bitboard = 0x0101010101010101
	FileHBB Bitboard = 0x8080808080808080
	Rank1BB Bitboard = 0x00000000000000FF
	Rank8BB Bitboard = 0xFF00000000000000
)

// RankMask returns the bitboard of all squares on the given rank (0-7).
func RankMask(rank uint8) Bitboard {
	return Rank1BB << (uint(rank) * 8)
}

// FileMask returns the bitboard of all squares on the given file (0-7).
func FileMask(file uint8) Bitboard {
	return FileABB << uint(file)
}

// DiagonalMask returns the union of both diagonals through sq, built by
// walking outward from the square to the board edge in all four
// diagonal directions. The square itself is included.
func DiagonalMask(sq Square) Bitboard {
	mask := sq.Bit()
	for _, step := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		r, f := int(sq.Rank())+step[0], int(sq.File())+step[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= NewSquare(uint8(r), uint8(f)).Bit()
			r += step[0]
			f += step[1]
		}
	}
	return mask
}

// ShiftNorth moves every square one rank up; bits shifted off the board vanish.
func (b Bitboard) ShiftNorth() Bitboard { return b << 8 }

// ShiftSouth moves every square one rank down.
func (b Bitboard) ShiftSouth() Bitboard { return b >> 8 }

// ShiftEast moves every square one file right, dropping the h-file so
// nothing wraps onto the a-file.
func (b Bitboard) ShiftEast() Bitboard { return (b &^ FileHBB) << 1 }

// ShiftWest moves every square one file left, dropping the a-file.
func (b Bitboard) ShiftWest() Bitboard { return (b &^ FileABB) >> 1 }

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// IsEmpty reports whether no square is set.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bit() != 0 }

// BitscanForward returns the lowest set square. Calling it on an empty
// bitboard is a programming error and panics.
func (b Bitboard) BitscanForward() Square {
	if b == 0 {
		panic("board: bitscan on empty bitboard")
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// BitscanReverse returns the highest set square. Panics on an empty bitboard.
func (b Bitboard) BitscanReverse() Square {
	if b == 0 {
		panic("board: bitscan on empty bitboard")
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// DropForward removes the lowest set square from the set and returns it.
// Used to decompose a mask square by square.
func (b *Bitboard) DropForward() Square {
	sq := b.BitscanForward()
	*b &= *b - 1
	return sq
}
