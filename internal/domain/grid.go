package domain

// Grid dimensions: four rows of thirteen cells.
const (
	GridRows = 4
	GridCols = 13
)

// Grid is the 4x13 board. A nil cell is a gap.
type Grid [GridRows][GridCols]*Card

// Position addresses a single cell of the grid.
type Position struct {
	Row int
	Col int
}

// InBounds reports whether (row, col) addresses a valid cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridRows && col >= 0 && col < GridCols
}

// Clone returns a copy of the grid. Cards themselves are immutable and
// shared between the copies.
func (g *Grid) Clone() Grid {
	return *g
}

// Find returns the position of the card with the given id.
func (g *Grid) Find(cardID string) (Position, bool) {
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			if c := g[row][col]; c != nil && c.ID == cardID {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// Gaps returns the positions of every empty cell.
func (g *Grid) Gaps() []Position {
	var gaps []Position
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			if g[row][col] == nil {
				gaps = append(gaps, Position{Row: row, Col: col})
			}
		}
	}
	return gaps
}

// GapState classifies a gap by whether it can currently or ever accept a card.
type GapState int

const (
	// GapActive gaps can accept a card right now.
	GapActive GapState = iota
	// GapInactive gaps are immediately preceded by another gap; they become
	// fillable again once that gap is filled.
	GapInactive
	// GapDead gaps sit right of a King (nearest non-gap leftward) and never
	// accept a card for the rest of the round.
	GapDead
)

// GapStateAt classifies the gap at (row, col). The cell must be a gap.
// Dead takes precedence over inactive: a gap whose nearest non-gap left
// neighbor is a King is permanently unfillable no matter what sits between.
func (g *Grid) GapStateAt(row, col int) GapState {
	if col == 0 {
		return GapActive
	}
	for c := col - 1; c >= 0; c-- {
		if card := g[row][c]; card != nil {
			if card.Rank == RankKing {
				return GapDead
			}
			if c == col-1 {
				return GapActive
			}
			return GapInactive
		}
	}
	// Only gaps to the left; column 0 is reachable once they fill.
	return GapInactive
}

// IsStuck reports whether no gap in the grid can accept a card: every gap
// is either dead (King to the left) or inactive (preceded by a gap). A stuck
// round can only continue via reshuffle.
func (g *Grid) IsStuck() bool {
	for _, gap := range g.Gaps() {
		if g.GapStateAt(gap.Row, gap.Col) == GapActive {
			return false
		}
	}
	return true
}
