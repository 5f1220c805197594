package board

import "fmt"

// Square is a board position in 0..63; rank*8+file, a1 = 0, h8 = 63.
type Square int8

const NoSquare Square = -1

// NewSquare builds a square from a rank and file, each in 0..7.
func NewSquare(rank, file uint8) Square {
	return Square(rank)*8 + Square(file)
}

// SquareFromString parses coordinates like "e4". Returns an error for
// anything that is not two characters in a-h / 1-8.
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(s[1]-'1', s[0]-'a'), nil
}

// Rank returns the square's rank, 0 for rank 1 up to 7 for rank 8.
func (sq Square) Rank() uint8 { return uint8(sq) >> 3 }

// File returns the square's file, 0 for the a-file up to 7 for the h-file.
func (sq Square) File() uint8 { return uint8(sq) & 7 }

// Bit returns the single-square bitboard for sq.
func (sq Square) Bit() Bitboard { return Bitboard(1) << uint(sq) }

func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{'a' + sq.File(), '1' + sq.Rank()})
}
