// Package game drives a chess game between humans and the engine: it owns
// the position and its legal move list, validates requested moves, runs
// the computer's turns and reports the result.
package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
)

var (
	// ErrIllegalMove is returned when a requested move is not in the legal move list.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned when a move is requested after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")
	// ErrNotHumanTurn is returned when a human move is requested on the computer's turn.
	ErrNotHumanTurn = errors.New("not the human player's turn")
	// ErrNotComputerTurn is returned when the computer is asked to move on the human's turn.
	ErrNotComputerTurn = errors.New("not the computer's turn")
)

// Mode represents the game mode.
type Mode int

const (
	ModeHumanVsHuman Mode = iota
	ModeHumanVsComputer
)

// Config holds the settings of a new game.
type Config struct {
	Mode        Mode
	PlayerColor board.Color // the human's color in human vs computer games
	Difficulty  engine.Difficulty
	Depth       int    // overrides the difficulty's depth when positive
	Seed        uint64 // engine shuffle and fallback randomness
	FEN         string // starting position; empty for the standard setup
}

// DefaultConfig returns a human vs computer game with the human as white.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeHumanVsComputer,
		PlayerColor: board.White,
		Difficulty:  engine.Hard,
		Seed:        uint64(time.Now().UnixNano()),
	}
}

// Game is one chess game. It is not safe for concurrent use.
type Game struct {
	position   *board.Position
	initialFEN string
	legalMoves board.MoveList
	notation   []string // SAN of each played ply

	mode        Mode
	playerColor board.Color
	engine      *engine.Engine

	gameOver   bool
	gameResult string
	started    time.Time
}

// New creates a game from cfg.
func New(cfg Config) (*Game, error) {
	fen := cfg.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	eng := engine.NewEngine(cfg.Seed)
	eng.SetDifficulty(cfg.Difficulty)
	if cfg.Depth > 0 {
		eng.SetDepth(cfg.Depth)
	}

	g := &Game{
		position:    pos,
		initialFEN:  pos.FEN(),
		mode:        cfg.Mode,
		playerColor: cfg.PlayerColor,
		engine:      eng,
		started:     time.Now(),
	}
	g.refresh()
	return g, nil
}

// Position returns the current position. Callers must not mutate it.
func (g *Game) Position() *board.Position {
	return g.position
}

// Engine returns the engine playing the computer side.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() board.MoveList {
	return g.legalMoves
}

// LegalMovesFrom returns the legal moves starting on sq.
func (g *Game) LegalMovesFrom(sq board.Square) board.MoveList {
	return g.legalMoves.From(sq)
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// PlayerColor returns the color the human player controls.
func (g *Game) PlayerColor() board.Color {
	return g.playerColor
}

// IsHumanTurn reports whether the side to move is played by a human.
func (g *Game) IsHumanTurn() bool {
	return g.mode == ModeHumanVsHuman || g.position.SideToMove == g.playerColor
}

// Over returns true if the game is over.
func (g *Game) Over() bool {
	return g.gameOver
}

// Result returns the game result string, empty while the game is running.
func (g *Game) Result() string {
	return g.gameResult
}

// Winner returns the winning color. ok is false while the game is running
// and after a stalemate.
func (g *Game) Winner() (c board.Color, ok bool) {
	if !g.position.IsCheckmate() {
		return board.NoColor, false
	}
	return g.position.SideToMove.Other(), true
}

// SelectMove plays the human move from one square to another. The pair
// is matched against the legal move list; unmatched pairs are rejected
// with ErrIllegalMove and leave the game untouched.
func (g *Game) SelectMove(from, to board.Square) (board.Move, error) {
	if g.gameOver {
		return board.NoMove, ErrGameOver
	}
	if !g.IsHumanTurn() {
		return board.NoMove, ErrNotHumanTurn
	}

	m, ok := g.legalMoves.Find(from, to)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	g.makeMove(m)
	return m, nil
}

// Play plays a human move given either in coordinate notation or in SAN.
func (g *Game) Play(s string) (board.Move, error) {
	if _, _, err := board.ParseMove(s); err == nil {
		return g.PlayAlgebraic(s)
	}
	return g.PlaySAN(s)
}

// PlaySAN plays a human move given in Standard Algebraic Notation ("Nf3").
func (g *Game) PlaySAN(s string) (board.Move, error) {
	if g.gameOver {
		return board.NoMove, ErrGameOver
	}
	if !g.IsHumanTurn() {
		return board.NoMove, ErrNotHumanTurn
	}

	m, err := board.ParseSAN(s, g.position)
	if errors.Is(err, board.ErrNoMatchingMove) || errors.Is(err, board.ErrAmbiguousMove) {
		return board.NoMove, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if err != nil {
		return board.NoMove, err
	}
	g.makeMove(m)
	return m, nil
}

// PlayAlgebraic plays a human move given in coordinate notation ("e2e4").
func (g *Game) PlayAlgebraic(s string) (board.Move, error) {
	from, to, err := board.ParseMove(s)
	if err != nil {
		return board.NoMove, err
	}
	return g.SelectMove(from, to)
}

// ComputerMove lets the engine play the side to move. If the search
// yields no move, a uniformly random legal move is played instead.
func (g *Game) ComputerMove() (board.Move, error) {
	if g.gameOver {
		return board.NoMove, ErrGameOver
	}
	if g.mode == ModeHumanVsComputer && g.position.SideToMove == g.playerColor {
		return board.NoMove, ErrNotComputerTurn
	}

	log.Printf("[AI] Starting search - SideToMove=%v depth=%d", g.position.SideToMove, g.engine.Depth())
	move, ok := g.engine.BestMove(g.position)
	if !ok {
		log.Printf("[AI] Search returned no move - falling back to a random move")
		move, ok = g.engine.RandomMove(g.legalMoves)
	}
	if !ok {
		// Unreachable while the game is running: no legal moves means
		// refresh has already ended it.
		g.checkGameEnd()
		return board.NoMove, ErrGameOver
	}

	g.makeMove(move)
	return move, nil
}

// Undo takes back one ply, or in human vs computer games as many plies as
// needed to give the move back to the human. It returns the number of
// plies taken back; with no history it does nothing.
func (g *Game) Undo() int {
	undone := 0
	for g.position.Ply() > 0 {
		g.position.Undo()
		undone++
		if g.mode == ModeHumanVsHuman || g.position.SideToMove == g.playerColor {
			break
		}
	}
	if undone > 0 {
		log.Printf("[MOVE] Undid %d ply, SideToMove=%v", undone, g.position.SideToMove)
		g.notation = g.notation[:g.position.Ply()]
		g.refresh()
	}
	return undone
}

// Reset returns to the initial position of the game.
func (g *Game) Reset() {
	for g.position.Ply() > 0 {
		g.position.Undo()
	}
	g.notation = g.notation[:0]
	g.started = time.Now()
	g.refresh()
	log.Printf("[GAME] Reset to %s", g.initialFEN)
}

// Notation returns the SAN of the moves played so far.
func (g *Game) Notation() []string {
	return g.notation
}

func (g *Game) makeMove(m board.Move) {
	san := m.SAN(g.position)
	log.Printf("[MOVE] %v plays %s (%v)", g.position.SideToMove, san, m)
	g.notation = append(g.notation, san)
	g.position.Apply(m)
	g.refresh()
}

// refresh regenerates the legal move list, which also updates the
// position's check and terminal flags, and re-evaluates game end.
func (g *Game) refresh() {
	g.legalMoves = g.position.GenerateLegalMoves()
	g.checkGameEnd()
}

func (g *Game) checkGameEnd() {
	g.gameOver = false
	g.gameResult = ""

	switch {
	case g.position.IsCheckmate():
		g.gameOver = true
		g.gameResult = fmt.Sprintf("%v wins by checkmate", g.position.SideToMove.Other())
	case g.position.IsStalemate():
		g.gameOver = true
		g.gameResult = "Draw by stalemate"
	}
	if g.gameOver {
		log.Printf("[GAME] %s after %d plies", g.gameResult, g.position.Ply())
	}
}
