// Package board implements an 8x8 mailbox chess position with legal move
// generation, check and pin detection, and single-step undo.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when a square cannot be parsed.
var ErrInvalidSquare = errors.New("invalid square")

// Square addresses a cell of the board by row and column.
// Row 0 is Black's back rank (rank 8), row 7 is White's back rank (rank 1).
// Column 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is the sentinel for "no square", e.g. no en-passant target.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square dr rows and dc columns away.
// The result may be off the board; check IsValid.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// File returns the file letter ('a'-'h').
func (sq Square) File() byte {
	return byte('a' + sq.Col)
}

// Rank returns the rank digit ('1'-'8').
func (sq Square) Rank() byte {
	return byte('8' - sq.Row)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{sq.File(), sq.Rank()})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// homeRow returns the back-rank row of the given color.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// pawnForward returns the row delta of a pawn advance for the given color.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
