// Command perft counts the leaf nodes of the legal move tree of a
// position, for verifying move generation.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/exp/maps"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/engine"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	profileDir := flag.String("profile", "", "Write a CPU profile into this directory")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	start := time.Now()

	if *divide {
		div := engine.Divide(pos, *depth)
		moves := maps.Keys(div)
		sort.Strings(moves)

		var sum uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		fmt.Printf("Time: %s\n", time.Since(start))
		return
	}

	nodes := engine.Perft(pos, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%d \t%d \t%s \t%.0f\n", *depth, nodes, elapsed, nps)
}
