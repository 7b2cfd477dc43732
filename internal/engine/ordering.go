package engine

import (
	"github.com/hailam/negachess/internal/board"
)

// Move ordering priorities
const (
	CaptureBase   = 1000
	PromotionBase = 900
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0},
}

// scoreMove rates a move for ordering. Quiet moves score zero.
func scoreMove(m board.Move) int {
	score := 0
	if m.IsCapture() {
		score = CaptureBase + mvvLva[m.Captured.Type()][m.Moved.Type()]
	}
	if m.IsPromotion {
		score += PromotionBase
	}
	return score
}

// sortMoves orders captures and promotions first, best victim first.
// Moves of equal score keep their relative order, so a preceding shuffle
// still decides between them.
func sortMoves(moves board.MoveList) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = scoreMove(m)
	}

	// Insertion sort (sufficient for ~40 moves)
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for ; j >= 0 && scores[j] < s; j-- {
			moves[j+1], scores[j+1] = moves[j], scores[j]
		}
		moves[j+1], scores[j+1] = m, s
	}
}
