package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/game"
	"github.com/hailam/negachess/internal/storage"
)

func newPlayer(t *testing.T, cfg game.Config, input string) (*player, *bytes.Buffer) {
	t.Helper()
	if cfg.Depth == 0 {
		cfg.Depth = 2
	}
	g, err := game.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	var out bytes.Buffer
	return &player{game: g, store: st, in: strings.NewReader(input), out: &out}, &out
}

func TestPlayerFoolsMateSavesGame(t *testing.T) {
	p, out := newPlayer(t, game.Config{Mode: game.ModeHumanVsHuman},
		"f2f3\ne7e5\nbogus\ng2g4\nd8h4\nquit\n")

	if err := p.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Game over: Black wins by checkmate") {
		t.Errorf("missing result in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Error: invalid move") {
		t.Errorf("bad input not reported:\n%s", out.String())
	}

	games, err := p.store.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || len(games[0].Moves) != 4 {
		t.Fatalf("saved games = %+v", games)
	}
	stats, _ := p.store.LoadStats()
	if stats.GamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", stats.GamesPlayed)
	}
}

func TestPlayerAgainstComputer(t *testing.T) {
	p, out := newPlayer(t, game.Config{Mode: game.ModeHumanVsComputer, PlayerColor: board.White, Seed: 4},
		"e2e4\nmoves\nundo\nfen\nquit\n")

	if err := p.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Computer plays") {
		t.Errorf("computer never moved:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Last move: e4 (e2e4)") {
		t.Errorf("last move not shown:\n%s", out.String())
	}
	if !strings.Contains(out.String(), board.StartFEN) {
		t.Errorf("undo should return to the start position:\n%s", out.String())
	}
	if games, _ := p.store.ListGames(); len(games) != 0 {
		t.Errorf("unfinished game was saved: %+v", games)
	}
}

func TestPlayerRejectsIllegalMove(t *testing.T) {
	p, out := newPlayer(t, game.Config{Mode: game.ModeHumanVsHuman}, "e2e5\n")

	if err := p.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "illegal move") {
		t.Errorf("illegal move not reported:\n%s", out.String())
	}
	if p.game.Position().Ply() != 0 {
		t.Error("illegal move changed the position")
	}
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]board.Color{"white": board.White, "B": board.Black} {
		got, err := parseColor(in)
		if err != nil || got != want {
			t.Errorf("parseColor(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseColor("red"); err == nil {
		t.Error("parseColor(red) should fail")
	}
}

func TestFormatHistory(t *testing.T) {
	tests := []struct {
		moves []string
		first board.Color
		want  string
	}{
		{nil, board.White, "No moves yet"},
		{[]string{"e4", "e5", "Nf3"}, board.White, "1. e4 e5 2. Nf3"},
		{[]string{"Kd7", "Qa4+"}, board.Black, "1... Kd7 2. Qa4+"},
	}
	for _, tt := range tests {
		if got := formatHistory(tt.moves, tt.first); got != tt.want {
			t.Errorf("formatHistory(%v) = %q, want %q", tt.moves, got, tt.want)
		}
	}
}

func TestPlayerAcceptsSAN(t *testing.T) {
	p, out := newPlayer(t, game.Config{Mode: game.ModeHumanVsHuman}, "e4\ne5\nNf3\nhistory\nquit\n")

	if err := p.run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1. e4 e5 2. Nf3") {
		t.Errorf("history not printed:\n%s", out.String())
	}
}

func TestExportGamesAddsExtension(t *testing.T) {
	p, _ := newPlayer(t, game.Config{Mode: game.ModeHumanVsHuman}, "f2f3\ne7e5\ng2g4\nd8h4\n")
	if err := p.run(); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := exportGames(p.store, filepath.Join(dir, "games"), "bzip2"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "games.bz2"))
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	defer f.Close()

	games, err := storage.ReadExport(f, storage.Bzip2)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Result != "Black wins by checkmate" {
		t.Errorf("exported games = %+v", games)
	}

	if got := withExt("out.jsonl", storage.Zstd); got != "out.jsonl" {
		t.Errorf("withExt(out.jsonl) = %q", got)
	}
}

func TestRunClosesStoreOnError(t *testing.T) {
	dir := t.TempDir()
	oldData, oldFEN := *dataDir, *fen
	t.Cleanup(func() { *dataDir, *fen = oldData, oldFEN })
	*dataDir, *fen = dir, "not a fen"

	if code := run(); code != 2 {
		t.Fatalf("run() = %d, want 2", code)
	}

	// Badger locks its directory, so reopening fails if run left it open.
	st, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("store left open: %v", err)
	}
	defer st.Close()
	if first, _ := st.IsFirstLaunch(); first {
		t.Error("preferences written before the failure were lost")
	}
}
