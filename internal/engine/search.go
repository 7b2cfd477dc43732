package engine

import (
	"golang.org/x/exp/rand"

	"github.com/hailam/negachess/internal/board"
)

// Search constants
const (
	Infinity     = Checkmate + 1 // strictly outside every reachable score
	DefaultDepth = 4
)

// Result is the outcome of one top-level search.
type Result struct {
	Move  board.Move
	Score int // from the point of view of the side to move at the root
	Found bool
	Nodes uint64
}

// Searcher performs the negamax alpha-beta search.
//
// The searcher owns the position for the duration of a call: every move
// applied inside the tree is undone before the node returns, so the
// position is unchanged when Search returns. A Searcher is not safe for
// concurrent use.
type Searcher struct {
	// Shuffle randomizes sibling order at every node so that equally
	// scored moves vary between searches. Disable it for reproducible
	// node counts.
	Shuffle bool

	// OrderCaptures searches captures and promotions before quiet moves.
	// It changes how much is pruned, never the score.
	OrderCaptures bool

	rng   *rand.Rand
	nodes uint64
}

// NewSearcher creates a searcher with sibling shuffling enabled.
func NewSearcher(seed uint64) *Searcher {
	return &Searcher{
		Shuffle: true,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Search runs negamax with alpha-beta pruning to the given depth and
// returns the best root move. Found is false only when the root has no
// legal moves.
func (s *Searcher) Search(pos *board.Position, depth int) Result {
	s.nodes = 0
	best := board.NoMove
	score := s.negamax(pos, depth, -Infinity, Infinity, &best)
	return Result{Move: best, Score: score, Found: best != board.NoMove, Nodes: s.nodes}
}

// negamax returns the score of pos for the side to move. root is non-nil
// only for the top-level call and receives the move with the best score.
func (s *Searcher) negamax(pos *board.Position, depth, alpha, beta int, root *board.Move) int {
	s.nodes++

	// Generate first so that mate and stalemate are known at every node,
	// leaves included.
	moves := pos.GenerateLegalMoves()
	if depth <= 0 || len(moves) == 0 {
		return relative(pos, Evaluate(pos))
	}
	s.order(moves)

	best := -Infinity
	for _, m := range moves {
		pos.Apply(m)
		score := -s.negamax(pos, depth-1, -beta, -alpha, nil)
		pos.Undo()

		if score > best {
			best = score
			if root != nil {
				*root = m
			}
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// NegamaxFull searches every line to the given depth without pruning.
// It returns the same score as Search for the same depth and move order
// and exists as a reference for it.
func (s *Searcher) NegamaxFull(pos *board.Position, depth int) Result {
	s.nodes = 0
	best := board.NoMove
	score := s.negamaxFull(pos, depth, &best)
	return Result{Move: best, Score: score, Found: best != board.NoMove, Nodes: s.nodes}
}

func (s *Searcher) negamaxFull(pos *board.Position, depth int, root *board.Move) int {
	s.nodes++

	moves := pos.GenerateLegalMoves()
	if depth <= 0 || len(moves) == 0 {
		return relative(pos, Evaluate(pos))
	}
	s.order(moves)

	best := -Infinity
	for _, m := range moves {
		pos.Apply(m)
		score := -s.negamaxFull(pos, depth-1, nil)
		pos.Undo()

		if score > best {
			best = score
			if root != nil {
				*root = m
			}
		}
	}
	return best
}

func (s *Searcher) order(moves board.MoveList) {
	if s.Shuffle {
		s.rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
	if s.OrderCaptures {
		sortMoves(moves)
	}
}

// RandomMove picks a uniformly random move from moves. It returns false
// when the list is empty.
func (s *Searcher) RandomMove(moves board.MoveList) (board.Move, bool) {
	if len(moves) == 0 {
		return board.NoMove, false
	}
	return moves[s.rng.Intn(len(moves))], true
}
