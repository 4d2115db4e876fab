package domain

import "math/rand"

// Reshuffle redistributes every non-locked card and every gap across the
// non-locked cells and returns the resulting grid. Locked prefixes keep
// their exact cells; the free zone of each row starts where the locked run
// breaks, so a row that does not open with a Two is entirely free.
//
// The free cards are shuffled, padded with one placeholder per free gap,
// and the combined fill is shuffled again so gaps land anywhere in the free
// zone rather than clustering at the tail. No card or gap is created or
// destroyed; the caller must recompute lock, score and win state afterward.
func Reshuffle(g *Grid, rng *rand.Rand) Grid {
	var freeCards []*Card
	var freePositions []Position
	for row := 0; row < GridRows; row++ {
		for col := lockedPrefixLen(g, row); col < GridCols; col++ {
			freePositions = append(freePositions, Position{Row: row, Col: col})
			if c := g[row][col]; c != nil {
				freeCards = append(freeCards, c)
			}
		}
	}

	rng.Shuffle(len(freeCards), func(i, j int) {
		freeCards[i], freeCards[j] = freeCards[j], freeCards[i]
	})

	// nil entries beyond the cards are the relocated gaps.
	fill := make([]*Card, len(freePositions))
	copy(fill, freeCards)
	rng.Shuffle(len(fill), func(i, j int) {
		fill[i], fill[j] = fill[j], fill[i]
	})

	out := g.Clone()
	for k, pos := range freePositions {
		out[pos.Row][pos.Col] = fill[k]
	}
	return out
}
