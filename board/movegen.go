package board

// Direction indices into the ray tables. North/east/northeast/northwest
// rays grow toward higher square indices, so their first blocker is the
// lowest set bit; the other four scan from the top.
const (
	dirNorth = iota
	dirSouth
	dirEast
	dirWest
	dirNorthEast
	dirNorthWest
	dirSouthEast
	dirSouthWest
)

var dirSteps = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var dirPositive = [8]bool{true, false, true, false, true, true, false, false}

var (
	rays        [64][8]Bitboard
	knightMoves [64]Bitboard
	kingMoves   [64]Bitboard
	pawnAttacks [2][64]Bitboard
)

// Castling transit masks. The "empty" mask is the squares between king
// and rook; the "safe" mask additionally includes the king's own square
// and must be free of enemy attacks.
const (
	castleEmptyWK Bitboard = 0x0000000000000060
	castleEmptyWQ Bitboard = 0x000000000000000E
	castleEmptyBK Bitboard = castleEmptyWK << 56
	castleEmptyBQ Bitboard = castleEmptyWQ << 56

	castleSafeWK Bitboard = 0x0000000000000070
	castleSafeWQ Bitboard = 0x000000000000001C
	castleSafeBK Bitboard = castleSafeWK << 56
	castleSafeBQ Bitboard = castleSafeWQ << 56
)

func init() {
	for sq := Square(0); sq < 64; sq++ {
		for d := 0; d < 8; d++ {
			var ray Bitboard
			r, f := int(sq.Rank())+dirSteps[d][0], int(sq.File())+dirSteps[d][1]
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray |= NewSquare(uint8(r), uint8(f)).Bit()
				r += dirSteps[d][0]
				f += dirSteps[d][1]
			}
			rays[sq][d] = ray
		}

		bit := sq.Bit()

		e, w := bit.ShiftEast(), bit.ShiftWest()
		ee := e.ShiftEast()
		ww := w.ShiftWest()
		knightMoves[sq] = e.ShiftNorth().ShiftNorth() | w.ShiftNorth().ShiftNorth() |
			e.ShiftSouth().ShiftSouth() | w.ShiftSouth().ShiftSouth() |
			ee.ShiftNorth() | ee.ShiftSouth() | ww.ShiftNorth() | ww.ShiftSouth()

		horiz := e | w
		kingMoves[sq] = horiz | (bit | horiz).ShiftNorth() | (bit | horiz).ShiftSouth()

		pawnAttacks[White][sq] = bit.ShiftNorth().ShiftEast() | bit.ShiftNorth().ShiftWest()
		pawnAttacks[Black][sq] = bit.ShiftSouth().ShiftEast() | bit.ShiftSouth().ShiftWest()
	}
}

func slidingAttacks(sq Square, occ Bitboard, dirs [4]int) Bitboard {
	var att Bitboard
	for _, d := range dirs {
		ray := rays[sq][d]
		att |= ray
		if blockers := ray & occ; blockers != 0 {
			var first Square
			if dirPositive[d] {
				first = blockers.BitscanForward()
			} else {
				first = blockers.BitscanReverse()
			}
			att &^= rays[first][d]
		}
	}
	return att
}

// RookAttacks returns the rook attack set from sq given the occupancy,
// stopping at (and including) the first blocker along each ray.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttacks(sq, occ, [4]int{dirNorth, dirSouth, dirEast, dirWest})
}

// BishopAttacks returns the bishop attack set from sq given the occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttacks(sq, occ, [4]int{dirNorthEast, dirNorthWest, dirSouthEast, dirSouthWest})
}

// QueenAttacks is the union of the rook and bishop attack sets.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// AttackedSquares unions the attack set of every piece of the given
// color. Castling legality and check detection both go through this;
// there is no separate fast path.
func (b *Board) AttackedSquares(color Color) Bitboard {
	occ := b.bitboards.AllPieces()
	var att Bitboard

	for bb := b.bitboards.PieceSet(color, PieceTypePawn); bb != 0; {
		att |= pawnAttacks[color][bb.DropForward()]
	}
	for bb := b.bitboards.PieceSet(color, PieceTypeKnight); bb != 0; {
		att |= knightMoves[bb.DropForward()]
	}
	for bb := b.bitboards.PieceSet(color, PieceTypeBishop); bb != 0; {
		att |= BishopAttacks(bb.DropForward(), occ)
	}
	for bb := b.bitboards.PieceSet(color, PieceTypeRook); bb != 0; {
		att |= RookAttacks(bb.DropForward(), occ)
	}
	for bb := b.bitboards.PieceSet(color, PieceTypeQueen); bb != 0; {
		att |= QueenAttacks(bb.DropForward(), occ)
	}
	for bb := b.bitboards.PieceSet(color, PieceTypeKing); bb != 0; {
		att |= kingMoves[bb.DropForward()]
	}
	return att
}

// InCheck reports whether color's king is attacked by the other side.
func (b *Board) InCheck(color Color) bool {
	kings := b.bitboards.PieceSet(color, PieceTypeKing)
	if kings == 0 {
		return false
	}
	return b.AttackedSquares(color.Other())&kings != 0
}

// GenerateLegalMoves produces every legal ply for the side to move, in
// the deterministic square-scan order of generation. Legality is
// decided by actually applying each candidate, testing whether the
// mover's own king is attacked, and unapplying it.
func (b *Board) GenerateLegalMoves() []Ply {
	pseudo := b.pseudoLegalMoves()
	legal := make([]Ply, 0, len(pseudo))
	mover := b.turn
	// The probe below churns the cached game state through
	// make/unmake; put back whatever was cached for this position.
	saved := b.state
	for _, m := range pseudo {
		b.MakeMove(m)
		if !b.InCheck(mover) {
			legal = append(legal, m)
		}
		b.UnmakeMove()
	}
	b.state = saved
	return legal
}

// pseudoLegalMoves scans the 64 squares in order and emits every
// destination each of the mover's pieces could reach, ignoring checks.
func (b *Board) pseudoLegalMoves() []Ply {
	moves := make([]Ply, 0, 48)
	occ := b.bitboards.AllPieces()
	for sq := Square(0); sq < 64; sq++ {
		p := b.mailbox[sq]
		if p == NoPiece || p.Color() != b.turn {
			continue
		}
		switch p.Type() {
		case PieceTypePawn:
			b.genPawnMoves(sq, p, &moves)
		case PieceTypeKnight:
			b.genTargets(sq, p, knightMoves[sq], &moves)
		case PieceTypeBishop:
			b.genTargets(sq, p, BishopAttacks(sq, occ), &moves)
		case PieceTypeRook:
			b.genTargets(sq, p, RookAttacks(sq, occ), &moves)
		case PieceTypeQueen:
			b.genTargets(sq, p, QueenAttacks(sq, occ), &moves)
		case PieceTypeKing:
			b.genTargets(sq, p, kingMoves[sq], &moves)
			b.genCastles(sq, p, &moves)
		}
	}
	return moves
}

func (b *Board) genTargets(sq Square, p Piece, targets Bitboard, moves *[]Ply) {
	targets &^= b.bitboards.ColorPieces(p.Color())
	for targets != 0 {
		dest := targets.DropForward()
		*moves = append(*moves, Ply{
			Start:    sq,
			Dest:     dest,
			Piece:    p,
			Captured: b.mailbox[dest],
		})
	}
}

func (b *Board) genPawnMoves(sq Square, p Piece, moves *[]Ply) {
	color := p.Color()
	occ := b.bitboards.AllPieces()

	forward := Square(8)
	startRank, promoRank := uint8(1), uint8(7)
	if color == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	push := sq + forward
	if !occ.Has(push) {
		b.emitPawnMove(Ply{Start: sq, Dest: push, Piece: p}, promoRank, moves)
		if sq.Rank() == startRank {
			double := push + forward
			if !occ.Has(double) {
				*moves = append(*moves, Ply{Start: sq, Dest: double, Piece: p, DoublePush: true})
			}
		}
	}

	enemy := b.bitboards.ColorPieces(color.Other())
	for caps := pawnAttacks[color][sq] & enemy; caps != 0; {
		dest := caps.DropForward()
		b.emitPawnMove(Ply{Start: sq, Dest: dest, Piece: p, Captured: b.mailbox[dest]}, promoRank, moves)
	}

	if b.epFile >= 0 {
		epRank := uint8(5)
		if color == Black {
			epRank = 2
		}
		epTarget := NewSquare(epRank, uint8(b.epFile))
		if pawnAttacks[color][sq].Has(epTarget) {
			*moves = append(*moves, Ply{
				Start:     sq,
				Dest:      epTarget,
				Piece:     p,
				Captured:  PieceFromType(color.Other(), PieceTypePawn),
				EnPassant: true,
			})
		}
	}
}

// emitPawnMove appends the ply, fanning out into the four promotion
// choices when the pawn reaches the last rank.
func (b *Board) emitPawnMove(p Ply, promoRank uint8, moves *[]Ply) {
	if p.Dest.Rank() != promoRank {
		*moves = append(*moves, p)
		return
	}
	color := p.Piece.Color()
	for _, pt := range [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight} {
		promo := p
		promo.Promotion = PieceFromType(color, pt)
		*moves = append(*moves, promo)
	}
}

// genCastles emits castling plies from the king's home square only,
// gated on the remaining right, empty transit squares, and the absence
// of enemy attacks on the king's path.
func (b *Board) genCastles(sq Square, p Piece, moves *[]Ply) {
	color := p.Color()
	home := NewSquare(0, 4)
	rightK, rightQ := CastlingWhiteK, CastlingWhiteQ
	emptyK, emptyQ := castleEmptyWK, castleEmptyWQ
	safeK, safeQ := castleSafeWK, castleSafeWQ
	if color == Black {
		home = NewSquare(7, 4)
		rightK, rightQ = CastlingBlackK, CastlingBlackQ
		emptyK, emptyQ = castleEmptyBK, castleEmptyBQ
		safeK, safeQ = castleSafeBK, castleSafeBQ
	}
	if sq != home {
		return
	}
	rights := b.CastlingRights()
	if !rights.Has(rightK) && !rights.Has(rightQ) {
		return
	}

	occ := b.bitboards.AllPieces()
	attacked := b.AttackedSquares(color.Other())

	if rights.Has(rightK) && occ&emptyK == 0 && attacked&safeK == 0 {
		*moves = append(*moves, Ply{Start: sq, Dest: NewSquare(sq.Rank(), 6), Piece: p, Castles: true})
	}
	if rights.Has(rightQ) && occ&emptyQ == 0 && attacked&safeQ == 0 {
		*moves = append(*moves, Ply{Start: sq, Dest: NewSquare(sq.Rank(), 2), Piece: p, Castles: true})
	}
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += b.Perft(depth - 1)
		b.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the per-root-move node counts at the given depth.
func (b *Board) PerftDivide(depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		b.MakeMove(m)
		counts[m.Notation()] = b.Perft(depth - 1)
		b.UnmakeMove()
	}
	return counts
}
