package board

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is returned when a move string cannot be parsed.
var ErrInvalidMove = errors.New("invalid move")

// Move describes one transition of the position.
// Moves are values; two moves are equal when their origin and destination
// match, whatever their flags. Promotion always yields a queen.
type Move struct {
	From     Square
	To       Square
	Moved    Piece
	Captured Piece // NoPiece for quiet moves; the taken pawn for en passant

	IsEnPassant bool
	IsCastle    bool
	IsPromotion bool
}

// NoMove represents an invalid or absent move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove builds a candidate move between two squares of pos, recording
// the moved and captured pieces. The candidate is only meaningful once
// matched against the legal move list.
func NewMove(from, to Square, pos *Position) Move {
	return Move{
		From:     from,
		To:       to,
		Moved:    pos.PieceAt(from),
		Captured: pos.PieceAt(to),
	}
}

// Equal reports whether two moves share origin and destination.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// Algebraic returns the coordinate notation of the move, e.g. "e2e4".
func (m Move) Algebraic() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// String returns the coordinate notation of the move.
func (m Move) String() string {
	return m.Algebraic()
}

// ParseMove parses coordinate notation ("e2e4") into origin and destination.
// A trailing promotion letter must name the queen.
func ParseMove(s string) (Square, Square, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	if len(s) == 5 && s[4] != 'q' && s[4] != 'Q' {
		return NoSquare, NoSquare, fmt.Errorf("%w: %q: only queen promotion is supported", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoSquare, NoSquare, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoSquare, NoSquare, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	return from, to, nil
}

// MoveList is an ordered sequence of moves.
type MoveList []Move

// Find returns the move of the list going from one square to another.
func (ml MoveList) Find(from, to Square) (Move, bool) {
	for _, m := range ml {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return NoMove, false
}

// Contains reports whether an equal move is in the list.
func (ml MoveList) Contains(m Move) bool {
	_, ok := ml.Find(m.From, m.To)
	return ok
}

// From returns the moves of the list starting on sq.
func (ml MoveList) From(sq Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// Strings returns the coordinate notation of every move, in order.
func (ml MoveList) Strings() []string {
	out := make([]string, len(ml))
	for i, m := range ml {
		out[i] = m.Algebraic()
	}
	return out
}
