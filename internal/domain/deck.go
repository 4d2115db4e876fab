package domain

import "math/rand"

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// NewDeck returns an ordered 52-card deck with fresh card identities.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			deck = append(deck, NewCard(suit, r))
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
