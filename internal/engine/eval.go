// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/hailam/negachess/internal/board"
)

// Evaluation constants
const (
	Checkmate = 1000 // score of a won position, larger than any material swing
	Stalemate = 0
)

// Evaluate returns the static evaluation of a position from white's
// perspective: the material balance, or the terminal score when the last
// move generation found checkmate or stalemate.
func Evaluate(pos *board.Position) int {
	switch pos.Status() {
	case board.Checkmate:
		// The side to move has been mated.
		return -Checkmate * pos.SideToMove.Sign()
	case board.Stalemate:
		return Stalemate
	}
	return EvaluateMaterial(pos)
}

// EvaluateMaterial returns the material balance only (white positive).
func EvaluateMaterial(pos *board.Position) int {
	return pos.Material()
}

// relative orients a white-perspective score to the side to move.
func relative(pos *board.Position, score int) int {
	return score * pos.SideToMove.Sign()
}
