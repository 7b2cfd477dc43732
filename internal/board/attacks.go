package board

// AttacksSquare returns true if any piece of color by attacks sq.
//
// This is a pseudo-legal probe: pins are ignored, because a piece pinned
// to its own king still controls the squares it attacks. Pawns attack
// diagonally only; a pawn push is not an attack. The position is not
// modified.
func (p *Position) AttacksSquare(sq Square, by Color) bool {
	// Pawns of color by attack sq from one row behind it, relative to
	// their direction of travel.
	pawn := NewPiece(Pawn, by)
	for _, dc := range [2]int{-1, 1} {
		if p.PieceAt(sq.Offset(-pawnForward(by), dc)) == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, o := range knightOffsets {
		if p.PieceAt(sq.Offset(o.DR, o.DC)) == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range allDirections {
		if p.PieceAt(sq.Offset(d.DR, d.DC)) == king {
			return true
		}
	}

	queen := NewPiece(Queen, by)
	if p.slideHits(sq, orthogonalDirections, NewPiece(Rook, by), queen) {
		return true
	}
	return p.slideHits(sq, diagonalDirections, NewPiece(Bishop, by), queen)
}

// slideHits walks each direction from sq and reports whether the first
// piece met is one of the given sliders.
func (p *Position) slideHits(sq Square, dirs []Direction, slider, queen Piece) bool {
	for _, d := range dirs {
		for to := sq.Offset(d.DR, d.DC); to.IsValid(); to = to.Offset(d.DR, d.DC) {
			pc := p.Board[to.Row][to.Col]
			if pc == NoPiece {
				continue
			}
			if pc == slider || pc == queen {
				return true
			}
			break
		}
	}
	return false
}
