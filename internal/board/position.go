package board

import (
	"fmt"
	"strings"
)

// TerminalStatus tells whether the side to move can still play.
// It is only meaningful right after legal moves have been generated.
type TerminalStatus uint8

const (
	Ongoing TerminalStatus = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (s TerminalStatus) String() string {
	switch s {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Ongoing"
	}
}

// historyEntry records what Undo needs to restore a move exactly.
type historyEntry struct {
	move      Move
	castling  CastlingRights
	enPassant Square
}

// Position represents a complete chess position and the moves that led
// to it. It is mutated only by Apply and Undo and is not safe for
// concurrent use.
type Position struct {
	// Board is indexed [row][col]; row 0 is rank 8.
	Board [8][8]Piece

	SideToMove Color

	kingSquare [2]Square
	castling   CastlingRights
	enPassant  Square
	history    []historyEntry

	status  TerminalStatus
	inCheck bool
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := &Position{}
	p.Reset()
	return p
}

// Reset restores the standard starting position and clears the history.
func (p *Position) Reset() {
	*p = Position{
		SideToMove: White,
		castling:   AllCastling,
		enPassant:  NoSquare,
		history:    p.history[:0],
	}
	for col, pt := range backRank {
		p.Board[0][col] = NewPiece(pt, Black)
		p.Board[1][col] = BlackPawn
		p.Board[6][col] = WhitePawn
		p.Board[7][col] = NewPiece(pt, White)
	}
	p.kingSquare[White] = NewSquare(7, 4)
	p.kingSquare[Black] = NewSquare(0, 4)
}

// PieceAt returns the piece at the given square, or NoPiece if empty or off the board.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Board[sq.Row][sq.Col]
}

// IsEmpty returns true if the square is on the board and empty.
func (p *Position) IsEmpty(sq Square) bool {
	return sq.IsValid() && p.Board[sq.Row][sq.Col] == NoPiece
}

func (p *Position) set(sq Square, pc Piece) {
	p.Board[sq.Row][sq.Col] = pc
}

// KingSquare returns the cached square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// Castling returns the current castling rights.
func (p *Position) Castling() CastlingRights {
	return p.castling
}

// EnPassant returns the en-passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// Status returns the terminal status computed by the last legal move generation.
func (p *Position) Status() TerminalStatus {
	return p.status
}

// InCheck returns true if the side to move was found in check by the
// last legal move generation.
func (p *Position) InCheck() bool {
	return p.inCheck
}

// IsCheckmate returns true if the last generation found checkmate.
func (p *Position) IsCheckmate() bool {
	return p.status == Checkmate
}

// IsStalemate returns true if the last generation found stalemate.
func (p *Position) IsStalemate() bool {
	return p.status == Stalemate
}

// Ply returns the number of applied moves that have not been undone.
func (p *Position) Ply() int {
	return len(p.history)
}

// MoveLog returns the applied moves, oldest first.
func (p *Position) MoveLog() []Move {
	moves := make([]Move, len(p.history))
	for i, e := range p.history {
		moves[i] = e.move
	}
	return moves
}

// LastMove returns the most recently applied move.
func (p *Position) LastMove() (Move, bool) {
	if len(p.history) == 0 {
		return NoMove, false
	}
	return p.history[len(p.history)-1].move, true
}

// Material returns the material balance in pawns (positive favors white).
func (p *Position) Material() int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := p.Board[row][col]
			if pc == NoPiece {
				continue
			}
			score += pc.Color().Sign() * pc.Value()
		}
	}
	return score
}

// Validate checks that each side has exactly one king and that the king
// cache agrees with the board.
func (p *Position) Validate() error {
	var kings [2]int
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := p.Board[row][col]
			if pc.Type() != King {
				continue
			}
			kings[pc.Color()]++
			if p.kingSquare[pc.Color()] != NewSquare(row, col) {
				return fmt.Errorf("%s king cached on %s, found on %s",
					pc.Color(), p.kingSquare[pc.Color()], NewSquare(row, col))
			}
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			pc := p.Board[row][col]
			if pc == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	return sb.String()
}
