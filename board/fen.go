package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) rune {
	const chars = " PNBRQK"
	ch := rune(chars[p.Type()])
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// ParseFEN parses a six-field FEN string into a new Board. The clock
// fields may be omitted and default to 0 and 1. Returns an error for
// anything malformed; no partial state is recovered.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.New("invalid FEN: not enough fields")
	}

	b := EmptyBoard()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.New("invalid FEN: incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := uint8(7 - i)
		file := uint8(0)
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += uint8(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("invalid FEN: unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, errors.New("invalid FEN: too many squares in rank")
			}
			b.addPiece(p, NewSquare(rank, file))
			file++
		}
		if file != 8 {
			return nil, errors.New("invalid FEN: rank does not cover 8 squares")
		}
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("invalid FEN: bad side to move %q", fields[1])
	}

	rights := CastlingNone
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights |= CastlingWhiteK
			case 'Q':
				rights |= CastlingWhiteQ
			case 'k':
				rights |= CastlingBlackK
			case 'q':
				rights |= CastlingBlackQ
			default:
				return nil, fmt.Errorf("invalid FEN: bad castling character %q", ch)
			}
		}
	}

	halfmove := uint16(0)
	if len(fields) >= 5 {
		v, err := strconv.ParseUint(fields[4], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: bad halfmove clock %q", fields[4])
		}
		halfmove = uint16(v)
	}
	if len(fields) >= 6 {
		v, err := strconv.ParseUint(fields[5], 10, 16)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("invalid FEN: bad fullmove number %q", fields[5])
		}
		b.fullmove = uint16(v)
	}

	// The sentinel carries the parsed rights and clock so that the
	// snapshot accessors read them back directly.
	b.history[0].Rights = rights
	b.history[0].HalfmoveClock = halfmove

	if fields[3] != "-" {
		target, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: bad en-passant target %q", fields[3])
		}
		if err := b.seedEnPassantHistory(target, rights, halfmove); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// seedEnPassantHistory pushes a synthetic double-pawn-push ply for the
// move that must have produced the en-passant target, so that unmaking
// the first real move restores the en-passant file the same way it does
// mid-game: by reading the ply below it.
func (b *Board) seedEnPassantHistory(target Square, rights CastlingRights, halfmove uint16) error {
	file := target.File()
	var synthetic Ply
	switch {
	case b.turn == White && target.Rank() == 5:
		synthetic = Ply{
			Start: NewSquare(6, file),
			Dest:  NewSquare(4, file),
			Piece: BlackPawn,
		}
	case b.turn == Black && target.Rank() == 2:
		synthetic = Ply{
			Start: NewSquare(1, file),
			Dest:  NewSquare(3, file),
			Piece: WhitePawn,
		}
	default:
		return fmt.Errorf("invalid FEN: en-passant target %v inconsistent with side to move", target)
	}
	synthetic.DoublePush = true
	synthetic.Rights = rights
	synthetic.HalfmoveClock = halfmove
	b.history = append(b.history, synthetic)
	b.epFile = int8(file)
	return nil
}

// ParseFen is the convenience wrapper that panics on invalid input.
// The protocol layer above is expected to recover, not this package.
func ParseFen(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// ToFEN serializes the position back into a six-field FEN string.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.mailbox[NewSquare(uint8(rank), uint8(file))]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(b.CastlingRights().String())

	sb.WriteByte(' ')
	if b.epFile >= 0 {
		epRank := uint8(5)
		if b.turn == Black {
			epRank = 2
		}
		sb.WriteString(NewSquare(epRank, uint8(b.epFile)).String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", b.HalfmoveClock(), b.fullmove)
	return sb.String()
}
