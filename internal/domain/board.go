package domain

import (
	"fmt"
	"math/rand"
)

// NewBoard deals a fresh board: a full shuffled deck laid out row-major
// into the 4x13 grid, with every Ace replaced by a gap. The four Aces are
// removed from play and never return, so the board always starts with
// exactly four gaps wherever the Aces fell.
func NewBoard(rng *rand.Rand) Grid {
	return dealBoard(ShuffleDeck(NewDeck(), rng))
}

func dealBoard(deck []Card) Grid {
	if len(deck) != DeckSize {
		panic(fmt.Sprintf("malformed deck: %d cards, want %d", len(deck), DeckSize))
	}

	var g Grid
	for i := range deck {
		if deck[i].Rank == RankAce {
			continue
		}
		card := deck[i]
		g[i/GridCols][i%GridCols] = &card
	}
	return g
}
