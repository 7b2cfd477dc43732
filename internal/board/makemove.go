package board

// Apply makes a move on the position. The move must come from the
// current legal move list; Apply does not check legality.
func (p *Position) Apply(m Move) {
	p.history = append(p.history, historyEntry{
		move:      m,
		castling:  p.castling,
		enPassant: p.enPassant,
	})

	us := m.Moved.Color()

	p.set(m.From, NoPiece)
	p.set(m.To, m.Moved)

	if m.IsPromotion {
		p.set(m.To, NewPiece(Queen, us))
	}

	// The captured pawn sits beside the origin, not on the destination.
	if m.IsEnPassant {
		p.set(NewSquare(m.From.Row, m.To.Col), NoPiece)
	}

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		p.set(rookTo, p.PieceAt(rookFrom))
		p.set(rookFrom, NoPiece)
	}

	if m.Moved.Type() == King {
		p.kingSquare[us] = m.To
	}

	p.enPassant = NoSquare
	if m.Moved.Type() == Pawn && abs(m.To.Row-m.From.Row) == 2 {
		p.enPassant = NewSquare((m.From.Row+m.To.Row)/2, m.From.Col)
	}

	p.updateCastling(m)

	p.SideToMove = p.SideToMove.Other()
	p.status = Ongoing
	p.inCheck = false
}

// Undo takes back the last applied move. It does nothing if no move has
// been applied.
func (p *Position) Undo() {
	n := len(p.history)
	if n == 0 {
		return
	}
	e := p.history[n-1]
	p.history = p.history[:n-1]
	m := e.move

	p.set(m.From, m.Moved)
	p.set(m.To, m.Captured)

	if m.IsEnPassant {
		p.set(m.To, NoPiece)
		p.set(NewSquare(m.From.Row, m.To.Col), m.Captured)
	}

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		p.set(rookFrom, p.PieceAt(rookTo))
		p.set(rookTo, NoPiece)
	}

	if m.Moved.Type() == King {
		p.kingSquare[m.Moved.Color()] = m.From
	}

	p.castling = e.castling
	p.enPassant = e.enPassant

	p.SideToMove = p.SideToMove.Other()
	p.status = Ongoing
	p.inCheck = false
}

// updateCastling drops the rights lost by m: a king move loses both,
// a rook leaving or captured on its home square loses that side.
func (p *Position) updateCastling(m Move) {
	switch m.Moved.Type() {
	case King:
		p.castling.revokeAll(m.Moved.Color())
	case Rook:
		p.castling.revokeRookSquare(m.Moved.Color(), m.From)
	}
	if m.Captured.Type() == Rook {
		p.castling.revokeRookSquare(m.Captured.Color(), m.To)
	}
}

// castleRookSquares returns the rook's origin and destination for a castle move.
func castleRookSquares(m Move) (Square, Square) {
	row := m.From.Row
	if m.To.Col > m.From.Col {
		return NewSquare(row, 7), NewSquare(row, m.To.Col-1)
	}
	return NewSquare(row, 0), NewSquare(row, m.To.Col+1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
