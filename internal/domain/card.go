package domain

import "github.com/google/uuid"

// Suit identifies one of the four standard suits.
type Suit string

const (
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitSpades   Suit = "S"
)

// Suits lists every suit in deck construction order.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank is a card rank ordered for adjacency comparisons (Two=2 .. Ace=14).
type Rank int

const (
	RankTwo   Rank = 2
	RankThree Rank = 3
	RankFour  Rank = 4
	RankFive  Rank = 5
	RankSix   Rank = 6
	RankSeven Rank = 7
	RankEight Rank = 8
	RankNine  Rank = 9
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// RankValue returns the ordering value of a rank (2..14). It is the single
// helper used for adjacency checks, scoring and display ordering.
func RankValue(r Rank) int {
	return int(r)
}

// Card is a single playing card. Cards are immutable once created; only
// their grid position changes. ID is unique and stable for the card's
// lifetime and is the identity used for locking and hinting.
type Card struct {
	ID   string
	Suit Suit
	Rank Rank
}

// NewCard creates a card with a fresh unique identity.
func NewCard(suit Suit, rank Rank) Card {
	return Card{ID: uuid.NewString(), Suit: suit, Rank: rank}
}
