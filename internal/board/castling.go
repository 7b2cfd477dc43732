package board

// CastlingRights holds the four independent castling permissions.
// A right that has been lost is never regained within a game.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// AllCastling grants every castling right, as in the starting position.
var AllCastling = CastlingRights{
	WhiteKingSide:  true,
	WhiteQueenSide: true,
	BlackKingSide:  true,
	BlackQueenSide: true,
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// CanCastle returns true if the given side may castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.WhiteKingSide
		}
		return cr.WhiteQueenSide
	}
	if kingSide {
		return cr.BlackKingSide
	}
	return cr.BlackQueenSide
}

// revoke removes one castling right.
func (cr *CastlingRights) revoke(c Color, kingSide bool) {
	switch {
	case c == White && kingSide:
		cr.WhiteKingSide = false
	case c == White:
		cr.WhiteQueenSide = false
	case kingSide:
		cr.BlackKingSide = false
	default:
		cr.BlackQueenSide = false
	}
}

// revokeAll removes both castling rights of one side.
func (cr *CastlingRights) revokeAll(c Color) {
	cr.revoke(c, true)
	cr.revoke(c, false)
}

// revokeRookSquare removes the right tied to a rook's home square, if sq is one.
func (cr *CastlingRights) revokeRookSquare(c Color, sq Square) {
	if sq.Row != homeRow(c) {
		return
	}
	switch sq.Col {
	case 0:
		cr.revoke(c, false)
	case 7:
		cr.revoke(c, true)
	}
}
