package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMatchingMove is returned when a SAN string names no legal move.
	ErrNoMatchingMove = errors.New("no legal move matches")
	// ErrAmbiguousMove is returned when a SAN string matches several legal moves.
	ErrAmbiguousMove = errors.New("ambiguous move")
)

// SAN returns the move in Standard Algebraic Notation. pos is the
// position before the move; it is left unchanged.
func (m Move) SAN(pos *Position) string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "-"
	}
	if m.Moved == NoPiece {
		return m.Algebraic() // Fallback to coordinates
	}

	inCheck, status := pos.inCheck, pos.status
	defer func() { pos.inCheck, pos.status = inCheck, status }()

	var sb strings.Builder

	if m.IsCastle {
		if m.To.Col > m.From.Col {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := m.Moved.Type()
		if pt != Pawn {
			sb.WriteString(NewPiece(pt, White).String())
			sb.WriteString(disambiguation(pos, m))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte(m.From.File())
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion {
			sb.WriteString("=Q")
		}
	}

	// Play the move to find the check marker
	pos.Apply(m)
	pos.GenerateLegalMoves()
	switch {
	case pos.IsCheckmate():
		sb.WriteByte('#')
	case pos.InCheck():
		sb.WriteByte('+')
	}
	pos.Undo()

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos *Position, m Move) string {
	var others []Square
	for _, o := range pos.GenerateLegalMoves() {
		if o.To == m.To && o.From != m.From && o.Moved == m.Moved {
			others = append(others, o.From)
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq.Col == m.From.Col {
			sameFile = true
		}
		if sq.Row == m.From.Row {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(m.From.File())
	case !sameRank:
		return string(m.From.Rank())
	default:
		return m.From.String()
	}
}

// ParseSAN resolves a SAN string against the legal moves of pos.
// Check markers and annotations are ignored. Only queen promotions exist,
// so "e8=Q", "e8Q" and "e8" all name the same promotion.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimRight(strings.TrimSpace(s), "+#!?")
	legal := pos.GenerateLegalMoves()

	switch s {
	case "O-O", "0-0", "O-O-O", "0-0-0":
		kingside := len(s) == 3
		for _, m := range legal {
			if m.IsCastle && (m.To.Col > m.From.Col) == kingside {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("%w: %q", ErrNoMatchingMove, orig)
	}

	if i := strings.IndexByte(s, '='); i >= 0 {
		if s[i+1:] != "Q" {
			return NoMove, fmt.Errorf("%w: %q: only queen promotion is supported", ErrInvalidMove, orig)
		}
		s = s[:i]
	} else if n := len(s); n >= 3 && s[n-1] == 'Q' && s[n-2] >= '1' && s[n-2] <= '8' {
		s = s[:n-1]
	}
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && strings.IndexByte("NBRQK", s[0]) >= 0 {
		pt = PieceFromChar(s[0]).Type()
		s = s[1:]
	}
	if len(s) < 2 || len(s) > 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, orig)
	}

	to, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %w", ErrInvalidMove, orig, err)
	}
	hint := s[:len(s)-2]

	found := NoMove
	matches := 0
	for _, m := range legal {
		if m.To != to || m.Moved.Type() != pt || !matchesHint(m.From, hint) {
			continue
		}
		// A pawn leaves its file only when capturing, and captures name the file.
		if pt == Pawn && hint == "" && m.From.Col != to.Col {
			continue
		}
		found = m
		matches++
	}

	switch matches {
	case 0:
		return NoMove, fmt.Errorf("%w: %q", ErrNoMatchingMove, orig)
	case 1:
		return found, nil
	default:
		return NoMove, fmt.Errorf("%w: %q", ErrAmbiguousMove, orig)
	}
}

// matchesHint reports whether from fits a disambiguation hint made of a
// file letter, a rank digit, or both.
func matchesHint(from Square, hint string) bool {
	for i := 0; i < len(hint); i++ {
		c := hint[i]
		switch {
		case c >= 'a' && c <= 'h':
			if from.File() != c {
				return false
			}
		case c >= '1' && c <= '8':
			if from.Rank() != c {
				return false
			}
		default:
			return false
		}
	}
	return true
}
