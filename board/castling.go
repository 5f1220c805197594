package board

// CastlingRights is a bitmask of the four independent castling flags.
// A right is monotonic within a game: once revoked it never comes back
// while moving forward, but unmaking a move restores the snapshot taken
// when the move was applied.
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingAll  = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
	CastlingNone CastlingRights = 0
)

// Has reports whether every right in mask is still available.
func (cr CastlingRights) Has(mask CastlingRights) bool { return cr&mask == mask }

// Revoke returns the rights with mask removed.
func (cr CastlingRights) Revoke(mask CastlingRights) CastlingRights { return cr &^ mask }

// String renders the rights as the FEN castling field ("KQkq" subset or "-").
func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	s := make([]byte, 0, 4)
	if cr.Has(CastlingWhiteK) {
		s = append(s, 'K')
	}
	if cr.Has(CastlingWhiteQ) {
		s = append(s, 'Q')
	}
	if cr.Has(CastlingBlackK) {
		s = append(s, 'k')
	}
	if cr.Has(CastlingBlackQ) {
		s = append(s, 'q')
	}
	return string(s)
}
