package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/negachess/internal/board"
)

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultyDepth maps difficulty to search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   DefaultDepth,
}

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Hard, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	depth      int
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine searching DefaultDepth plies. The seed
// drives sibling shuffling and the random fallback move.
func NewEngine(seed uint64) *Engine {
	return &Engine{
		searcher:   NewSearcher(seed),
		depth:      DefaultDepth,
		difficulty: Hard,
	}
}

// SetDifficulty sets the engine difficulty and the matching depth.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
	if depth, ok := DifficultyDepth[d]; ok {
		e.depth = depth
	}
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetDepth overrides the search depth. Depths below one are raised to one.
func (e *Engine) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	e.depth = depth
}

// Depth returns the search depth in plies.
func (e *Engine) Depth() int {
	return e.depth
}

// SetShuffle enables or disables sibling shuffling.
func (e *Engine) SetShuffle(on bool) {
	e.searcher.Shuffle = on
}

// SetCaptureOrdering enables or disables searching captures first.
func (e *Engine) SetCaptureOrdering(on bool) {
	e.searcher.OrderCaptures = on
}

// BestMove searches pos and returns the chosen move. The second result
// is false when the side to move has no legal moves. pos is left as it
// was found.
func (e *Engine) BestMove(pos *board.Position) (board.Move, bool) {
	start := time.Now()
	res := e.searcher.Search(pos, e.depth)

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth: e.depth,
			Score: res.Score,
			Nodes: res.Nodes,
			Time:  time.Since(start),
			Move:  res.Move,
		})
	}
	return res.Move, res.Found
}

// RandomMove picks a uniformly random move, the fallback when a search
// yields nothing.
func (e *Engine) RandomMove(moves board.MoveList) (board.Move, bool) {
	return e.searcher.RandomMove(moves)
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		pos.Apply(m)
		nodes += Perft(pos, depth-1)
		pos.Undo()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by the
// move's coordinate notation.
func Divide(pos *board.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range pos.GenerateLegalMoves() {
		pos.Apply(m)
		out[m.Algebraic()] = Perft(pos, depth-1)
		pos.Undo()
	}
	return out
}

// ScoreToString converts a side-to-move score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score >= Checkmate:
		return "Mate"
	case score <= -Checkmate:
		return "Mated"
	case score > 0:
		return "+" + strconv.Itoa(score)
	default:
		return strconv.Itoa(score)
	}
}
