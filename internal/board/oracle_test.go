package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
)

// oracleMoves returns the from/to pairs dragontoothmg finds legal in fen.
// Under-promotions collapse into the single queen promotion we generate.
func oracleMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	seen := make(map[string]bool)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		s := m.String()[:4]
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

var oracleFixtures = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

func TestMovesMatchOracle(t *testing.T) {
	for _, fen := range oracleFixtures {
		pos := MustParseFEN(fen)
		got := sortedStrings(pos.GenerateLegalMoves())
		if diff := cmp.Diff(oracleMoves(fen), got); diff != "" {
			t.Errorf("%s: move list mismatch (-oracle +ours):\n%s", fen, diff)
		}
	}
}

// Every child of each fixture must agree as well; this reaches the
// en passant and castling-rights states that only arise after a move.
func TestChildMovesMatchOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping oracle walk in short mode")
	}
	for _, fen := range oracleFixtures[:3] {
		pos := MustParseFEN(fen)
		for _, m := range pos.GenerateLegalMoves() {
			pos.Apply(m)
			child := pos.FEN()
			got := sortedStrings(pos.GenerateLegalMoves())
			if diff := cmp.Diff(oracleMoves(child), got); diff != "" {
				t.Errorf("%s after %s: move list mismatch (-oracle +ours):\n%s", fen, m, diff)
			}
			pos.Undo()
		}
	}
}
