package domain

import (
	"math/rand"
	"testing"
)

func TestNewBoardDeckIntegrity(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewBoard(rng)

		type identity struct {
			suit Suit
			rank Rank
		}
		gaps := 0
		seen := make(map[identity]bool, 48)
		ids := make(map[string]bool, 48)
		for row := 0; row < GridRows; row++ {
			for col := 0; col < GridCols; col++ {
				c := g[row][col]
				if c == nil {
					gaps++
					continue
				}
				if c.Rank == RankAce {
					t.Fatalf("seed %d: ace left on the board at (%d,%d)", seed, row, col)
				}
				key := identity{suit: c.Suit, rank: c.Rank}
				if seen[key] {
					t.Fatalf("seed %d: duplicate card %s%d", seed, c.Suit, c.Rank)
				}
				seen[key] = true
				if ids[c.ID] {
					t.Fatalf("seed %d: duplicate card id %s", seed, c.ID)
				}
				ids[c.ID] = true
			}
		}

		if gaps != 4 {
			t.Fatalf("seed %d: %d gaps, want 4", seed, gaps)
		}
		if len(seen) != 48 {
			t.Fatalf("seed %d: %d distinct cards, want 48", seed, len(seen))
		}
	}
}

func TestNewBoardLayoutIsSeedDeterministic(t *testing.T) {
	a := NewBoard(rand.New(rand.NewSource(7)))
	b := NewBoard(rand.New(rand.NewSource(7)))

	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			ca, cb := a[row][col], b[row][col]
			if (ca == nil) != (cb == nil) {
				t.Fatalf("gap mismatch at (%d,%d)", row, col)
			}
			if ca != nil && (ca.Suit != cb.Suit || ca.Rank != cb.Rank) {
				t.Fatalf("layout mismatch at (%d,%d): %s%d vs %s%d",
					row, col, ca.Suit, ca.Rank, cb.Suit, cb.Rank)
			}
		}
	}
}

func TestDealBoardPanicsOnMalformedDeck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("short deck did not panic")
		}
	}()
	dealBoard(NewDeck()[:51])
}
