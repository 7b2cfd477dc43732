package board

// Direction is a unit step on the board, as a row and column delta.
type Direction struct {
	DR, DC int
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{DR: -d.DR, DC: -d.DC}
}

// IsDiagonal returns true for the four diagonal steps.
func (d Direction) IsDiagonal() bool {
	return d.DR != 0 && d.DC != 0
}

var (
	orthogonalDirections = []Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	diagonalDirections   = []Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirections        = append(append([]Direction{}, orthogonalDirections...), diagonalDirections...)

	knightOffsets = []Direction{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
)

// Check describes one piece giving check.
type Check struct {
	Square Square    // square of the checking piece
	Dir    Direction // direction from the king toward the checker
	Knight bool      // knight checks cannot be blocked
}

// CheckInfo is the result of the check and pin scan for one side.
type CheckInfo struct {
	InCheck bool
	Checks  []Check

	// Pins maps each pinned friendly piece to the direction from the
	// king toward its pinner. A pinned piece may only move along that
	// direction or its reverse. Read-only once returned.
	Pins map[Square]Direction
}

// Pinned returns the pin axis of the piece on sq, if it is pinned.
func (ci CheckInfo) Pinned(sq Square) (Direction, bool) {
	d, ok := ci.Pins[sq]
	return d, ok
}

// ChecksAndPins scans outward from the king of the side to move and
// reports checks and pins against it.
func (p *Position) ChecksAndPins() CheckInfo {
	us := p.SideToMove
	return p.checksAndPins(us, p.kingSquare[us])
}

// IsKingAttacked returns true if the king of color c is attacked.
func (p *Position) IsKingAttacked(c Color) bool {
	return p.checksAndPins(c, p.kingSquare[c]).InCheck
}

// checksAndPins walks the eight rays and the knight offsets from ksq,
// treating ksq as the square of the king of color us.
func (p *Position) checksAndPins(us Color, ksq Square) CheckInfo {
	them := us.Other()
	var info CheckInfo

	for _, d := range allDirections {
		candidate := NoSquare
		for step := 1; ; step++ {
			sq := ksq.Offset(d.DR*step, d.DC*step)
			if !sq.IsValid() {
				break
			}
			pc := p.Board[sq.Row][sq.Col]
			if pc == NoPiece {
				continue
			}
			if pc.Color() == us {
				if candidate == NoSquare {
					candidate = sq
					continue
				}
				// Two friendly pieces: nothing can pin or check along this ray.
				break
			}
			if attacksAlongRay(pc.Type(), them, d, step) {
				if candidate == NoSquare {
					info.InCheck = true
					info.Checks = append(info.Checks, Check{Square: sq, Dir: d})
				} else {
					if info.Pins == nil {
						info.Pins = make(map[Square]Direction, 2)
					}
					info.Pins[candidate] = d
				}
			}
			break
		}
	}

	knight := NewPiece(Knight, them)
	for _, o := range knightOffsets {
		sq := ksq.Offset(o.DR, o.DC)
		if sq.IsValid() && p.Board[sq.Row][sq.Col] == knight {
			info.InCheck = true
			info.Checks = append(info.Checks, Check{Square: sq, Dir: o, Knight: true})
		}
	}

	return info
}

// attacksAlongRay reports whether a piece of type pt and color c, found
// step squares from the king along d, attacks back along that ray.
func attacksAlongRay(pt PieceType, c Color, d Direction, step int) bool {
	switch pt {
	case Queen:
		return true
	case Rook:
		return !d.IsDiagonal()
	case Bishop:
		return d.IsDiagonal()
	case King:
		return step == 1
	case Pawn:
		// A pawn attacks forward-diagonally, so seen from the king it
		// stands one step against its own direction of travel.
		return step == 1 && d.IsDiagonal() && d.DR == -pawnForward(c)
	default:
		return false
	}
}
