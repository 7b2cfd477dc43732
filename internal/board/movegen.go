package board

// GenerateLegalMoves returns every legal move for the side to move.
// As a side effect it records whether that side is in check and sets
// the terminal status (checkmate or stalemate when the list is empty).
func (p *Position) GenerateLegalMoves() MoveList {
	us := p.SideToMove
	ksq := p.kingSquare[us]
	info := p.checksAndPins(us, ksq)

	moves := make(MoveList, 0, 48)

	switch len(info.Checks) {
	case 0:
		moves = p.generatePseudo(us, info, moves)
		moves = p.generateCastles(us, ksq, moves)
	case 1:
		moves = p.generatePseudo(us, info, moves)
		moves = filterCheckResponses(moves, ksq, info.Checks[0])
	default:
		// Double check: only the king can move.
		moves = p.generateKingMoves(ksq, us, moves)
	}

	p.inCheck = info.InCheck
	switch {
	case len(moves) > 0:
		p.status = Ongoing
	case info.InCheck:
		p.status = Checkmate
	default:
		p.status = Stalemate
	}

	return moves
}

// generatePseudo generates the moves of every piece of color us,
// honoring pins. King moves are fully legal; other moves may still fail
// to answer a check.
func (p *Position) generatePseudo(us Color, info CheckInfo, moves MoveList) MoveList {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := p.Board[row][col]
			if pc == NoPiece || pc.Color() != us {
				continue
			}
			sq := NewSquare(row, col)
			pin, pinned := info.Pinned(sq)

			switch pc.Type() {
			case Pawn:
				moves = p.generatePawnMoves(sq, us, pin, pinned, moves)
			case Knight:
				// A pinned knight has no line to move along.
				if !pinned {
					moves = p.generateKnightMoves(sq, us, moves)
				}
			case Bishop:
				moves = p.generateSlides(sq, us, diagonalDirections, pin, pinned, moves)
			case Rook:
				moves = p.generateSlides(sq, us, orthogonalDirections, pin, pinned, moves)
			case Queen:
				moves = p.generateSlides(sq, us, allDirections, pin, pinned, moves)
			case King:
				moves = p.generateKingMoves(sq, us, moves)
			}
		}
	}
	return moves
}

// alongPin returns true if moving in direction d keeps a piece on its pin line.
func alongPin(d, pin Direction, pinned bool) bool {
	return !pinned || d == pin || d == pin.Reverse()
}

func (p *Position) generateSlides(from Square, us Color, dirs []Direction, pin Direction, pinned bool, moves MoveList) MoveList {
	moved := p.Board[from.Row][from.Col]
	for _, d := range dirs {
		if !alongPin(d, pin, pinned) {
			continue
		}
		for to := from.Offset(d.DR, d.DC); to.IsValid(); to = to.Offset(d.DR, d.DC) {
			target := p.Board[to.Row][to.Col]
			if target == NoPiece {
				moves = append(moves, Move{From: from, To: to, Moved: moved})
				continue
			}
			if target.Color() != us {
				moves = append(moves, Move{From: from, To: to, Moved: moved, Captured: target})
			}
			break
		}
	}
	return moves
}

func (p *Position) generateKnightMoves(from Square, us Color, moves MoveList) MoveList {
	moved := p.Board[from.Row][from.Col]
	for _, o := range knightOffsets {
		to := from.Offset(o.DR, o.DC)
		if !to.IsValid() {
			continue
		}
		target := p.Board[to.Row][to.Col]
		if target == NoPiece || target.Color() != us {
			moves = append(moves, Move{From: from, To: to, Moved: moved, Captured: target})
		}
	}
	return moves
}

// generateKingMoves adds the king steps that do not land on an attacked
// square. Each destination is tested by moving the king there and
// re-running the check scan; the board is restored afterward.
func (p *Position) generateKingMoves(from Square, us Color, moves MoveList) MoveList {
	king := p.Board[from.Row][from.Col]
	for _, d := range allDirections {
		to := from.Offset(d.DR, d.DC)
		if !to.IsValid() {
			continue
		}
		target := p.Board[to.Row][to.Col]
		if target != NoPiece && target.Color() == us {
			continue
		}

		p.set(from, NoPiece)
		p.set(to, king)
		attacked := p.checksAndPins(us, to).InCheck
		p.set(to, target)
		p.set(from, king)

		if !attacked {
			moves = append(moves, Move{From: from, To: to, Moved: king, Captured: target})
		}
	}
	return moves
}

func (p *Position) generatePawnMoves(from Square, us Color, pin Direction, pinned bool, moves MoveList) MoveList {
	them := us.Other()
	pawn := p.Board[from.Row][from.Col]
	fwd := pawnForward(us)
	lastRow := homeRow(them)
	startRow := homeRow(us) + fwd

	one := from.Offset(fwd, 0)
	if p.IsEmpty(one) && alongPin(Direction{fwd, 0}, pin, pinned) {
		moves = append(moves, Move{From: from, To: one, Moved: pawn, IsPromotion: one.Row == lastRow})

		two := from.Offset(2*fwd, 0)
		if from.Row == startRow && p.IsEmpty(two) {
			moves = append(moves, Move{From: from, To: two, Moved: pawn})
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(fwd, dc)
		if !to.IsValid() || !alongPin(Direction{fwd, dc}, pin, pinned) {
			continue
		}
		target := p.Board[to.Row][to.Col]
		switch {
		case target != NoPiece && target.Color() == them:
			moves = append(moves, Move{
				From: from, To: to, Moved: pawn, Captured: target,
				IsPromotion: to.Row == lastRow,
			})
		case target == NoPiece && to == p.enPassant:
			victim := NewPiece(Pawn, them)
			if p.PieceAt(NewSquare(from.Row, to.Col)) != victim {
				continue
			}
			if !p.enPassantExposesKing(from, to, us) {
				moves = append(moves, Move{
					From: from, To: to, Moved: pawn, Captured: victim,
					IsEnPassant: true,
				})
			}
		}
	}
	return moves
}

// enPassantExposesKing handles the one discovered check the pin scan
// cannot see: capturing en passant empties two squares of the same rank.
// If the king shares that rank, walk from the king across both pawns and
// look for an enemy rook or queen with nothing else in between.
func (p *Position) enPassantExposesKing(from, to Square, us Color) bool {
	ksq := p.kingSquare[us]
	if ksq.Row != from.Row {
		return false
	}

	dc := 1
	if from.Col < ksq.Col {
		dc = -1
	}
	them := us.Other()
	for sq := ksq.Offset(0, dc); sq.IsValid(); sq = sq.Offset(0, dc) {
		if sq.Col == from.Col || sq.Col == to.Col {
			continue
		}
		pc := p.Board[sq.Row][sq.Col]
		if pc == NoPiece {
			continue
		}
		return pc.Color() == them && (pc.Type() == Rook || pc.Type() == Queen)
	}
	return false
}

// generateCastles adds castle moves for a king that is not in check.
// The squares between king and rook must be empty and the squares the
// king crosses must not be attacked.
func (p *Position) generateCastles(us Color, ksq Square, moves MoveList) MoveList {
	row := homeRow(us)
	if ksq != NewSquare(row, 4) {
		return moves
	}
	them := us.Other()
	if p.AttacksSquare(ksq, them) {
		return moves
	}

	king := NewPiece(King, us)
	rook := NewPiece(Rook, us)

	if p.castling.CanCastle(us, true) && p.Board[row][7] == rook &&
		p.Board[row][5] == NoPiece && p.Board[row][6] == NoPiece &&
		!p.AttacksSquare(NewSquare(row, 5), them) && !p.AttacksSquare(NewSquare(row, 6), them) {
		moves = append(moves, Move{From: ksq, To: NewSquare(row, 6), Moved: king, IsCastle: true})
	}

	if p.castling.CanCastle(us, false) && p.Board[row][0] == rook &&
		p.Board[row][1] == NoPiece && p.Board[row][2] == NoPiece && p.Board[row][3] == NoPiece &&
		!p.AttacksSquare(NewSquare(row, 3), them) && !p.AttacksSquare(NewSquare(row, 2), them) {
		moves = append(moves, Move{From: ksq, To: NewSquare(row, 2), Moved: king, IsCastle: true})
	}

	return moves
}

// filterCheckResponses keeps, among non-king moves, those that capture
// the single checker or block its ray. King moves were already tested.
func filterCheckResponses(moves MoveList, ksq Square, check Check) MoveList {
	var valid []Square
	if check.Knight {
		valid = []Square{check.Square}
	} else {
		for sq := ksq.Offset(check.Dir.DR, check.Dir.DC); sq.IsValid(); sq = sq.Offset(check.Dir.DR, check.Dir.DC) {
			valid = append(valid, sq)
			if sq == check.Square {
				break
			}
		}
	}

	kept := moves[:0]
	for _, m := range moves {
		if m.Moved.Type() == King || containsSquare(valid, m.To) {
			kept = append(kept, m)
			continue
		}
		// En passant removes a checking pawn without landing on it.
		if m.IsEnPassant && NewSquare(m.From.Row, m.To.Col) == check.Square {
			kept = append(kept, m)
		}
	}
	return kept
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
