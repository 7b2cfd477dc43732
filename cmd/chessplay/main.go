// Command chessplay plays chess in the terminal against the engine or
// between two humans.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
	"github.com/hailam/negachess/internal/game"
	"github.com/hailam/negachess/internal/storage"
)

var (
	depth        = flag.Int("depth", 0, "search depth in plies (overrides -difficulty)")
	difficulty   = flag.String("difficulty", "", "engine difficulty: easy, medium or hard")
	color        = flag.String("color", "", "color played by the human: white or black")
	hvh          = flag.Bool("hvh", false, "human vs human (no engine)")
	fen          = flag.String("fen", "", "starting position in FEN")
	dataDir      = flag.String("data", "", "data directory (defaults to the platform data directory)")
	exportPath   = flag.String("export", "", "export saved games to this file and exit (extension added when missing)")
	exportFormat = flag.String("export-format", "zstd", "export compression: zstd or bzip2")
	seed         = flag.Uint64("seed", 0, "random seed for the engine (0 = time based)")
	ordered      = flag.Bool("order-captures", false, "search captures first")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run plays one session and returns the exit code. The store is closed
// on every path.
func run() int {
	st, err := storage.Open(*dataDir)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	if st != nil {
		defer st.Close()
	}

	if *exportPath != "" {
		if err := exportGames(st, *exportPath, *exportFormat); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	}

	prefs := loadPreferences(st)
	cfg, err := buildConfig(prefs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	savePreferences(st, cfg, prefs)
	checkFirstLaunch(st, prefs)

	g, err := game.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	g.Engine().SetCaptureOrdering(*ordered)
	g.Engine().OnInfo = func(info engine.SearchInfo) {
		log.Printf("[AI] depth=%d score=%s nodes=%d time=%s move=%s",
			info.Depth, engine.ScoreToString(info.Score), info.Nodes, info.Time, info.Move)
	}

	p := &player{game: g, store: st, in: os.Stdin, out: os.Stdout}
	if err := p.run(); err != nil {
		log.Print(err)
		return 1
	}

	if st != nil {
		log.Printf("[STORAGE] Database size: %s", st.Size())
	}
	return 0
}

func loadPreferences(st *storage.Storage) *storage.UserPreferences {
	if st == nil {
		return storage.DefaultPreferences()
	}
	prefs, err := st.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		return storage.DefaultPreferences()
	}
	return prefs
}

func savePreferences(st *storage.Storage, cfg game.Config, prefs *storage.UserPreferences) {
	if st == nil {
		return
	}
	game.ApplyToPreferences(cfg, prefs)
	if err := st.SavePreferences(prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func checkFirstLaunch(st *storage.Storage, prefs *storage.UserPreferences) {
	if st == nil {
		return
	}
	first, err := st.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if first {
		fmt.Printf("Welcome, %s! Type moves like e2e4, or 'help'.\n", prefs.Username)
		if err := st.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
	}
}

// buildConfig starts from the stored preferences and applies the flags
// that were given on the command line.
func buildConfig(prefs *storage.UserPreferences) (game.Config, error) {
	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	cfg := game.ConfigFromPreferences(prefs, s)
	cfg.FEN = *fen

	var err error
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "depth":
			cfg.Depth = *depth
		case "difficulty":
			cfg.Difficulty, err = engine.ParseDifficulty(*difficulty)
			// A named difficulty replaces a stored custom depth.
			if !isSet("depth") {
				cfg.Depth = 0
			}
		case "color":
			cfg.PlayerColor, err = parseColor(*color)
		case "hvh":
			cfg.Mode = game.ModeHumanVsComputer
			if *hvh {
				cfg.Mode = game.ModeHumanVsHuman
			}
		}
	})
	return cfg, err
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return board.White, nil
	case "black", "b":
		return board.Black, nil
	}
	return board.White, fmt.Errorf("unknown color %q", s)
}

func exportGames(st *storage.Storage, path, format string) error {
	if st == nil {
		return fmt.Errorf("export: storage unavailable")
	}
	c, err := storage.ParseCompression(format)
	if err != nil {
		return err
	}

	path = withExt(path, c)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	n, err := st.ExportGames(f, c)
	if err != nil {
		return err
	}
	log.Printf("[STORAGE] Exported %d games to %s (%s)", n, path, c)
	return nil
}

// withExt appends the codec's extension to a path that has none.
func withExt(path string, c storage.Compression) string {
	if filepath.Ext(path) == "" {
		return path + c.Ext()
	}
	return path
}
