package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/hailam/negachess/internal/board"
	"github.com/hailam/negachess/internal/game"
	"github.com/hailam/negachess/internal/storage"
)

const helpText = `Commands:
  e2e4     play a move (from and to squares)
  Nf3      play a move in standard algebraic notation
  moves    list legal moves
  history  list the moves played so far
  undo     take back a move
  reset    start over from the initial position
  fen      print the position in FEN
  quit     leave the game`

// player runs the read-eval-print loop of one game.
type player struct {
	game  *game.Game
	store *storage.Storage // nil when storage is unavailable
	in    io.Reader
	out   io.Writer

	saved bool // the finished game has been stored
}

func (p *player) run() error {
	sc := bufio.NewScanner(p.in)
	p.printPosition()

	for {
		if err := p.computerTurn(); err != nil {
			return err
		}

		fmt.Fprintf(p.out, "%s> ", p.game.Position().SideToMove)
		if !sc.Scan() {
			p.saveIfOver()
			return sc.Err()
		}

		quit, err := p.handle(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintf(p.out, "Error: %v\n", err)
		}
		if quit {
			p.saveIfOver()
			return nil
		}
	}
}

// computerTurn plays engine moves while it is the computer's turn.
func (p *player) computerTurn() error {
	for !p.game.Over() && !p.game.IsHumanTurn() {
		m, err := p.game.ComputerMove()
		if err != nil {
			return err
		}
		notation := p.game.Notation()
		fmt.Fprintf(p.out, "Computer plays %s (%s)\n", notation[len(notation)-1], m)
		p.afterMove()
	}
	return nil
}

// handle executes one command line and reports whether to quit.
func (p *player) handle(line string) (bool, error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(p.out, helpText)
	case "moves":
		moves := p.game.LegalMoves().Strings()
		sort.Strings(moves)
		fmt.Fprintf(p.out, "%d legal moves: %s\n", len(moves), strings.Join(moves, " "))
	case "undo":
		if p.game.Undo() == 0 {
			fmt.Fprintln(p.out, "Nothing to undo")
			return false, nil
		}
		p.saved = false
		p.printPosition()
	case "reset":
		p.saveIfOver()
		p.game.Reset()
		p.saved = false
		p.printPosition()
	case "history":
		pos := p.game.Position()
		first := pos.SideToMove
		if pos.Ply()%2 == 1 {
			first = first.Other()
		}
		fmt.Fprintln(p.out, formatHistory(p.game.Notation(), first))
	case "fen":
		fmt.Fprintln(p.out, p.game.Position().FEN())
	default:
		if _, err := p.game.Play(line); err != nil {
			if errors.Is(err, game.ErrIllegalMove) || errors.Is(err, board.ErrInvalidMove) {
				return false, fmt.Errorf("%w (type 'moves' for the legal moves)", err)
			}
			return false, err
		}
		p.afterMove()
	}
	return false, nil
}

// formatHistory numbers the moves in pairs. A game started with black to
// move begins with "1...".
func formatHistory(notation []string, first board.Color) string {
	if len(notation) == 0 {
		return "No moves yet"
	}
	var sb strings.Builder
	offset := 0
	if first == board.Black {
		sb.WriteString("1...")
		offset = 1
	}
	for i, san := range notation {
		ply := i + offset
		if ply%2 == 0 {
			if ply > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", ply/2+1)
		}
		sb.WriteByte(' ')
		sb.WriteString(san)
	}
	return sb.String()
}

func (p *player) afterMove() {
	p.printPosition()
	if p.game.Over() {
		fmt.Fprintf(p.out, "Game over: %s\n", p.game.Result())
		p.saveIfOver()
	}
}

func (p *player) printPosition() {
	pos := p.game.Position()
	fmt.Fprint(p.out, pos.String())
	if m, ok := pos.LastMove(); ok {
		notation := p.game.Notation()
		fmt.Fprintf(p.out, "Last move: %s (%s)\n", notation[len(notation)-1], m)
	}
	if pos.InCheck() && !p.game.Over() {
		fmt.Fprintf(p.out, "%s is in check\n", pos.SideToMove)
	}
}

// saveIfOver stores a finished game and its statistics once.
func (p *player) saveIfOver() {
	if p.store == nil || p.saved || !p.game.Over() {
		return
	}
	p.saved = true

	id, err := p.store.SaveGame(p.game.Record())
	if err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
		return
	}
	if err := p.store.RecordGame(p.game.Outcome()); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
	}
	log.Printf("[STORAGE] Saved game %s", id)
}
