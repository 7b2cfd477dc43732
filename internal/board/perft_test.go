package board

import (
	"fmt"
	"testing"
)

// perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		p.Apply(m)
		nodes += perft(p, depth-1)
		p.Undo()
	}
	return nodes
}

type perftCase struct {
	depth    int
	expected int64
}

func runPerft(t *testing.T, pos *Position, cases []perftCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			got := perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
			if pos.Ply() != 0 {
				t.Errorf("perft left %d moves applied", pos.Ply())
			}
		})
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	cases := []perftCase{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	if testing.Short() {
		cases = cases[:3]
	}
	runPerft(t, pos, cases)

	if pos.FEN() != StartFEN {
		t.Errorf("position changed by perft: %s", pos.FEN())
	}
}

// TestPerftKiwipete tests the Kiwipete position: castling both ways,
// en passant and pins. No promotion is reachable within depth 3, so the
// queen-only promotion rule does not change the counts.
func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	runPerft(t, pos, []perftCase{
		{1, 48},
		{2, 2039},
		{3, 97862},
	})
}

// TestPerftPosition3 tests en passant edge cases, including horizontal pins.
func TestPerftPosition3(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	runPerft(t, pos, []perftCase{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	})
}

// TestPerftEnPassantPin tests the en passant horizontal pin.
// Black pawn on e4 could capture en passant on d3, but that would expose
// the black king on a4 to the white rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, m := range pos.GenerateLegalMoves() {
		if m.IsEnPassant {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	// Depth 2: After e4e3 (14), after king moves (16 each x5) = 14 + 80 = 94
	runPerft(t, pos, []perftCase{
		{1, 6},
		{2, 94},
	})
}
