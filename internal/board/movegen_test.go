package board

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sortedStrings(ml MoveList) []string {
	s := ml.Strings()
	sort.Strings(s)
	return s
}

var safetyFixtures = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"4k3/1R6/8/8/8/3n4/8/r3K3 w - - 0 1",
}

// No legal move may leave the mover's king attacked.
func TestLegalMovesKeepKingSafe(t *testing.T) {
	for _, fen := range safetyFixtures {
		pos := MustParseFEN(fen)
		for _, m := range pos.GenerateLegalMoves() {
			mover := pos.SideToMove
			pos.Apply(m)
			if pos.IsKingAttacked(mover) {
				t.Errorf("%s: %s leaves the %s king attacked", fen, m, mover)
			}
			if pos.AttacksSquare(pos.KingSquare(mover), mover.Other()) {
				t.Errorf("%s: %s leaves the %s king on an attacked square", fen, m, mover)
			}
			pos.Undo()
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	pos := MustParseFEN("4k3/1R6/8/8/8/3n4/8/r3K3 w - - 0 1")

	info := pos.ChecksAndPins()
	if len(info.Checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(info.Checks))
	}

	got := sortedStrings(pos.GenerateLegalMoves())
	want := []string{"e1d2", "e1e2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("double check moves mismatch (-want +got):\n%s", diff)
	}
	if !pos.InCheck() {
		t.Error("expected white in check")
	}
}

func TestPinnedPieces(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{
			name: "rook slides along its pin",
			fen:  "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7"},
		},
		{
			name: "pinned knight is frozen",
			fen:  "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1",
			from: "e2",
			want: []string{},
		},
		{
			name: "diagonally pinned pawn may only capture the pinner",
			fen:  "4k3/8/8/8/8/2b5/3P4/4K3 w - - 0 1",
			from: "d2",
			want: []string{"d2c3"},
		},
		{
			name: "pawn pinned on a file may still push",
			fen:  "4r2k/8/8/8/8/8/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e2e3", "e2e4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := MustParseFEN(tt.fen)
			got := sortedStrings(pos.GenerateLegalMoves().From(mustSquare(t, tt.from)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("moves from %s mismatch (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestPinRecorded(t *testing.T) {
	pos := MustParseFEN("4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	info := pos.ChecksAndPins()
	if info.InCheck {
		t.Fatal("white is not in check")
	}
	dir, ok := info.Pinned(mustSquare(t, "e2"))
	if !ok {
		t.Fatal("knight on e2 should be pinned")
	}
	if dir != (Direction{DR: -1, DC: 0}) {
		t.Errorf("pin direction = %+v, want toward rank 8", dir)
	}
}

// A pinned bishop still controls the squares it sees, so castling
// through them must be refused.
func TestAttackProbeIgnoresPins(t *testing.T) {
	pos := MustParseFEN("2k5/8/8/8/2b5/8/8/2R1K2R w K - 0 1")

	if !pos.AttacksSquare(mustSquare(t, "f1"), Black) {
		t.Error("pinned bishop on c4 should still attack f1")
	}
	moves := pos.GenerateLegalMoves()
	if moves.Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "g1")}) {
		t.Errorf("castling through an attacked square: %v", moves.Strings())
	}
}

func TestPawnPushIsNotAnAttack(t *testing.T) {
	pos := MustParseFEN("4k3/8/8/8/8/4p3/8/4K3 w - - 0 1")
	if pos.AttacksSquare(mustSquare(t, "e2"), Black) {
		t.Error("a pawn does not attack the square in front of it")
	}
	if !pos.AttacksSquare(mustSquare(t, "d2"), Black) || !pos.AttacksSquare(mustSquare(t, "f2"), Black) {
		t.Error("black pawn on e3 should attack d2 and f2")
	}
	if !pos.GenerateLegalMoves().Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "e2")}) {
		t.Error("king may step in front of an enemy pawn")
	}
}

func TestCastling(t *testing.T) {
	pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	moves := pos.GenerateLegalMoves()
	for _, s := range []string{"e1g1", "e1c1"} {
		from, to, _ := ParseMove(s)
		m, ok := moves.Find(from, to)
		if !ok || !m.IsCastle {
			t.Errorf("%s castle missing", s)
		}
	}

	t.Run("rights lost for good once the king moves", func(t *testing.T) {
		pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, pos, "e1f1", "e8f8", "f1e1", "f8e8")
		moves := pos.GenerateLegalMoves()
		if moves.Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "g1")}) ||
			moves.Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "c1")}) {
			t.Errorf("castling after the king moved: %v", moves.Strings())
		}
		if got := pos.Castling().String(); got != "-" {
			t.Errorf("castling rights = %s, want -", got)
		}
	})

	t.Run("undo and redo of later moves keeps rights lost", func(t *testing.T) {
		pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, pos, "e1f1", "a8b8", "f1e1", "b8a8")
		pos.Undo()
		pos.Undo()
		play(t, pos, "f1e1", "b8a8")

		for _, m := range pos.GenerateLegalMoves() {
			if m.IsCastle {
				t.Errorf("castle %s after the king and rook returned home", m)
			}
		}
		if got := pos.Castling().String(); got != "k" {
			t.Errorf("castling rights = %s, want k", got)
		}
	})

	t.Run("rook move revokes only its side", func(t *testing.T) {
		pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, pos, "h1h2", "h8h7", "h2h1", "h7h8")
		moves := pos.GenerateLegalMoves()
		if moves.Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "g1")}) {
			t.Error("kingside castle after the h1 rook moved")
		}
		if !moves.Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "c1")}) {
			t.Error("queenside castle should remain")
		}
		if got := pos.Castling().String(); got != "Qq" {
			t.Errorf("castling rights = %s, want Qq", got)
		}
	})

	t.Run("undo restores rights", func(t *testing.T) {
		pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, pos, "a1b1")
		pos.Undo()
		if got := pos.Castling().String(); got != "KQkq" {
			t.Errorf("castling rights after undo = %s, want KQkq", got)
		}
	})

	t.Run("no castling out of check", func(t *testing.T) {
		pos := MustParseFEN("r3k2r/8/8/8/8/8/4q3/R3K2R w KQkq - 0 1")
		for _, m := range pos.GenerateLegalMoves() {
			if m.IsCastle {
				t.Errorf("castled out of check: %s", m)
			}
		}
	})

	t.Run("queenside b-file may be attacked", func(t *testing.T) {
		pos := MustParseFEN("1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
		if !pos.GenerateLegalMoves().Contains(Move{From: mustSquare(t, "e1"), To: mustSquare(t, "c1")}) {
			t.Error("queenside castle is legal when only b1 is attacked")
		}
	})
}

func TestPromotionIsQueenOnly(t *testing.T) {
	pos := MustParseFEN("8/P7/8/8/8/8/8/k3K3 w - - 0 1")

	promos := pos.GenerateLegalMoves().From(mustSquare(t, "a7"))
	if len(promos) != 1 {
		t.Fatalf("expected one promotion move, got %v", promos.Strings())
	}
	if !promos[0].IsPromotion {
		t.Error("a7a8 should be flagged as a promotion")
	}
}

func TestEnPassantAnswersCheck(t *testing.T) {
	// d2d4 gave check to the king on c5; exd3 removes the checker.
	pos := MustParseFEN("8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")

	moves := pos.GenerateLegalMoves()
	if !pos.InCheck() {
		t.Fatal("black should be in check")
	}
	m, ok := moves.Find(mustSquare(t, "e4"), mustSquare(t, "d3"))
	if !ok || !m.IsEnPassant {
		t.Errorf("en passant capture of the checker missing: %v", moves.Strings())
	}
	if moves.Contains(Move{From: mustSquare(t, "e4"), To: mustSquare(t, "e3")}) {
		t.Error("pawn push does not answer the check")
	}
}

func TestBlockOrCapture(t *testing.T) {
	// Rook on a8 checks along the rank: Qxa8 captures, Bb8 blocks.
	pos := MustParseFEN("r3K3/8/8/8/8/6Bk/8/Q7 w - - 0 1")

	got := sortedStrings(pos.GenerateLegalMoves())
	want := []string{"a1a8", "e8d7", "e8e7", "e8f7", "g3b8"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("check responses mismatch (-want +got):\n%s", diff)
	}
}
