package game

import (
	"fmt"
	"time"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/storage"
)

// Record returns the game as a storable record: the initial position and
// the moves played so far in coordinate notation.
func (g *Game) Record() storage.GameRecord {
	played := g.position.MoveLog()
	moves := make([]string, len(played))
	for i, m := range played {
		moves[i] = m.Algebraic()
	}

	return storage.GameRecord{
		InitialFEN:  g.initialFEN,
		Moves:       moves,
		Result:      g.gameResult,
		Mode:        toStorageMode(g.mode),
		Difficulty:  toStorageDifficulty(g.engine.Difficulty()),
		PlayerColor: toStorageColor(g.playerColor),
		Started:     g.started,
		Finished:    time.Now(),
	}
}

// Outcome summarizes the finished game from the human player's side for
// the statistics. In human vs human games white is taken as the player.
func (g *Game) Outcome() storage.GameResult {
	res := storage.GameResult{
		Mode:       toStorageMode(g.mode),
		Difficulty: toStorageDifficulty(g.engine.Difficulty()),
		Duration:   time.Since(g.started),
	}
	player := g.playerColor
	if g.mode == ModeHumanVsHuman {
		player = board.White
	}
	if winner, ok := g.Winner(); ok {
		res.Won = winner == player
	} else {
		res.Draw = g.position.IsStalemate()
	}
	return res
}

// Replay rebuilds a game from a record by playing its moves from the
// initial position. Turn order is not enforced, so computer moves replay
// like human ones. An entry that does not match a legal move fails with
// ErrIllegalMove.
func Replay(rec storage.GameRecord, seed uint64) (*Game, error) {
	g, err := New(Config{
		Mode:        fromStorageMode(rec.Mode),
		PlayerColor: fromStorageColor(rec.PlayerColor),
		Difficulty:  fromStorageDifficulty(rec.Difficulty),
		Seed:        seed,
		FEN:         rec.InitialFEN,
	})
	if err != nil {
		return nil, err
	}

	for i, s := range rec.Moves {
		if g.gameOver {
			return nil, fmt.Errorf("replay move %d %q: %w", i+1, s, ErrGameOver)
		}
		from, to, err := board.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i+1, err)
		}
		m, ok := g.legalMoves.Find(from, to)
		if !ok {
			return nil, fmt.Errorf("replay move %d %q: %w", i+1, s, ErrIllegalMove)
		}
		g.makeMove(m)
	}
	if !rec.Started.IsZero() {
		g.started = rec.Started
	}
	return g, nil
}

func toStorageMode(m Mode) storage.GameMode {
	if m == ModeHumanVsComputer {
		return storage.ModeHumanVsComputer
	}
	return storage.ModeHumanVsHuman
}

func fromStorageMode(m storage.GameMode) Mode {
	if m == storage.ModeHumanVsComputer {
		return ModeHumanVsComputer
	}
	return ModeHumanVsHuman
}

func toStorageDifficulty(d engine.Difficulty) storage.Difficulty {
	switch d {
	case engine.Easy:
		return storage.DifficultyEasy
	case engine.Medium:
		return storage.DifficultyMedium
	default:
		return storage.DifficultyHard
	}
}

func fromStorageDifficulty(d storage.Difficulty) engine.Difficulty {
	switch d {
	case storage.DifficultyEasy:
		return engine.Easy
	case storage.DifficultyMedium:
		return engine.Medium
	default:
		return engine.Hard
	}
}

func toStorageColor(c board.Color) storage.PlayerColor {
	if c == board.Black {
		return storage.ColorBlack
	}
	return storage.ColorWhite
}

func fromStorageColor(c storage.PlayerColor) board.Color {
	if c == storage.ColorBlack {
		return board.Black
	}
	return board.White
}

// ConfigFromPreferences builds a game configuration from stored preferences.
func ConfigFromPreferences(prefs *storage.UserPreferences, seed uint64) Config {
	return Config{
		Mode:        fromStorageMode(prefs.GameMode),
		PlayerColor: fromStorageColor(prefs.PlayerColor),
		Difficulty:  fromStorageDifficulty(prefs.Difficulty),
		Depth:       prefs.SearchDepth,
		Seed:        seed,
	}
}

// ApplyToPreferences writes the effective settings of cfg back to prefs.
func ApplyToPreferences(cfg Config, prefs *storage.UserPreferences) {
	prefs.GameMode = toStorageMode(cfg.Mode)
	prefs.PlayerColor = toStorageColor(cfg.PlayerColor)
	prefs.Difficulty = toStorageDifficulty(cfg.Difficulty)
	prefs.SearchDepth = cfg.Depth
}
