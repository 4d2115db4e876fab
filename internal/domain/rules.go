package domain

// CanPlaceCard reports whether card may legally be placed at (row, col).
// Column 0 accepts only a Two of any suit. Any other column requires the
// left neighbor to be a non-King card of the same suit ranked exactly one
// below. A gap to the left makes the placement illegal regardless of card.
//
// The function is a pure legality predicate: it does not check that the
// target cell is currently empty or that the card is free to move. Those
// are the caller's responsibility before committing a move.
func CanPlaceCard(card Card, row, col int, g *Grid) bool {
	if !InBounds(row, col) {
		panic("CanPlaceCard: position out of bounds")
	}
	if col == 0 {
		return card.Rank == RankTwo
	}

	left := g[row][col-1]
	switch {
	case left == nil:
		return false
	case left.Rank == RankKing:
		return false
	case left.Suit != card.Suit:
		return false
	}
	return RankValue(card.Rank) == RankValue(left.Rank)+1
}

// lockedPrefixLen returns how many cells of the row, counting from column 0,
// form the unbroken same-suit ascending run that starts with a Two. A row
// whose first cell is absent or not a Two has no locked prefix at all, even
// if a later stretch looks sequential.
func lockedPrefixLen(g *Grid, row int) int {
	first := g[row][0]
	if first == nil || first.Rank != RankTwo {
		return 0
	}

	suit := first.Suit
	n := 1
	for col := 1; col < GridCols; col++ {
		c := g[row][col]
		if c == nil || c.Suit != suit || RankValue(c.Rank) != RankValue(g[row][col-1].Rank)+1 {
			break
		}
		n++
	}
	return n
}

// LockedCards returns the ids of every locked card: cards inside a row's
// from-the-left run of the same suit starting at Two. Locked cards never
// move for the rest of the round.
func LockedCards(g *Grid) map[string]struct{} {
	locked := make(map[string]struct{})
	for row := 0; row < GridRows; row++ {
		n := lockedPrefixLen(g, row)
		for col := 0; col < n; col++ {
			locked[g[row][col].ID] = struct{}{}
		}
	}
	return locked
}

// CalculateScore sums the rank values of every card that sits in an
// unbroken same-suit ascending run from column 0 beginning with a Two.
// The scan is deliberately independent of LockedCards so the two can be
// checked against each other.
func CalculateScore(g *Grid) int {
	total := 0
	for row := 0; row < GridRows; row++ {
		first := g[row][0]
		if first == nil || first.Rank != RankTwo {
			continue
		}

		suit := first.Suit
		expected := RankTwo
		for col := 0; col < GridCols; col++ {
			c := g[row][col]
			if c == nil || c.Suit != suit || c.Rank != expected {
				break
			}
			total += RankValue(c.Rank)
			expected++
		}
	}
	return total
}

// IsWin reports whether every row is a complete same-suit run Two..King
// followed by exactly one trailing gap at the last column.
func IsWin(g *Grid) bool {
	for row := 0; row < GridRows; row++ {
		if g[row][GridCols-1] != nil {
			return false
		}
		first := g[row][0]
		if first == nil || first.Rank != RankTwo {
			return false
		}
		suit := first.Suit
		for col := 0; col < GridCols-1; col++ {
			c := g[row][col]
			if c == nil || c.Suit != suit || RankValue(c.Rank) != col+2 {
				return false
			}
		}
	}
	return true
}

// Move pairs a card with the gap it can legally fill.
type Move struct {
	Card Card
	To   Position
}

// LegalMoves enumerates every playable move on the grid: for each active
// gap, the unlocked cards that CanPlaceCard accepts there. Used for hints;
// an empty result on a gapped board means the round is stuck.
func LegalMoves(g *Grid) []Move {
	locked := LockedCards(g)

	var moves []Move
	for _, gap := range g.Gaps() {
		if g.GapStateAt(gap.Row, gap.Col) != GapActive {
			continue
		}
		for row := 0; row < GridRows; row++ {
			for col := 0; col < GridCols; col++ {
				c := g[row][col]
				if c == nil {
					continue
				}
				if _, isLocked := locked[c.ID]; isLocked {
					continue
				}
				if CanPlaceCard(*c, gap.Row, gap.Col, g) {
					moves = append(moves, Move{Card: *c, To: gap})
				}
			}
		}
	}
	return moves
}
