package board

// PieceBitboards holds the twelve piece-kind-per-color bitboards plus
// three aggregate boards. The aggregates are cached derived state: they
// must equal the union of their constituents at all times, so every
// mutation goes through AddPiece/RemovePiece, which re-derive the
// touched color's aggregate and the overall occupancy.
type PieceBitboards struct {
	// indexed [color][PieceType-1]
	pieces [2][6]Bitboard

	white Bitboard
	black Bitboard
	all   Bitboard
}

// PieceSet returns the bitboard for one piece kind of one color.
func (pb *PieceBitboards) PieceSet(color Color, pt PieceType) Bitboard {
	return pb.pieces[color][pt-1]
}

// ColorPieces returns the aggregate occupancy of one side.
func (pb *PieceBitboards) ColorPieces(color Color) Bitboard {
	if color == White {
		return pb.white
	}
	return pb.black
}

// AllPieces returns the overall occupancy.
func (pb *PieceBitboards) AllPieces() Bitboard { return pb.all }

// AddPiece sets sq in the bitboard for (color, pt) and refreshes that
// color's aggregates.
func (pb *PieceBitboards) AddPiece(color Color, pt PieceType, sq Square) {
	pb.pieces[color][pt-1] |= sq.Bit()
	pb.refresh(color)
}

// RemovePiece clears sq from the bitboard for (color, pt) and refreshes
// that color's aggregates.
func (pb *PieceBitboards) RemovePiece(color Color, pt PieceType, sq Square) {
	pb.pieces[color][pt-1] &^= sq.Bit()
	pb.refresh(color)
}

func (pb *PieceBitboards) refresh(color Color) {
	var agg Bitboard
	for _, b := range pb.pieces[color] {
		agg |= b
	}
	if color == White {
		pb.white = agg
	} else {
		pb.black = agg
	}
	pb.all = pb.white | pb.black
}

// KingSquare returns the king square for a color. Panics if the color
// has no king, which only happens on a malformed board.
func (pb *PieceBitboards) KingSquare(color Color) Square {
	return pb.pieces[color][PieceTypeKing-1].BitscanForward()
}

// consistent reports whether the cached aggregates match the twelve
// source bitboards. Test hook.
func (pb *PieceBitboards) consistent() bool {
	var white, black Bitboard
	for _, b := range pb.pieces[White] {
		white |= b
	}
	for _, b := range pb.pieces[Black] {
		black |= b
	}
	return white == pb.white && black == pb.black && pb.all == white|black
}
