package domain

import (
	"math/rand"
	"testing"
)

// tc builds a card with a fresh id for grid fixtures.
func tc(suit Suit, rank Rank) *Card {
	c := NewCard(suit, rank)
	return &c
}

// setRun places a run of cards into a row starting at column 0.
func setRun(g *Grid, row int, suit Suit, ranks ...Rank) {
	for i, r := range ranks {
		g[row][i] = tc(suit, r)
	}
}

// wonGrid builds a winning board: each row Two..King of one suit plus a
// trailing gap.
func wonGrid() Grid {
	var g Grid
	for row, suit := range Suits {
		for col := 0; col < GridCols-1; col++ {
			g[row][col] = tc(suit, Rank(col+2))
		}
	}
	return g
}

func TestCanPlaceCardColumnZero(t *testing.T) {
	var g Grid
	g[0][3] = tc(SuitClubs, RankNine)

	for _, suit := range Suits {
		if !CanPlaceCard(Card{Suit: suit, Rank: RankTwo}, 2, 0, &g) {
			t.Errorf("two of %s rejected at column 0", suit)
		}
	}
	for r := RankThree; r <= RankAce; r++ {
		if CanPlaceCard(Card{Suit: SuitHearts, Rank: r}, 2, 0, &g) {
			t.Errorf("rank %d accepted at column 0", r)
		}
	}
}

func TestCanPlaceCardAdjacency(t *testing.T) {
	var g Grid
	g[0][0] = tc(SuitHearts, RankSeven)
	g[1][0] = tc(SuitSpades, RankKing)
	// g[2][0] left as a gap.

	tests := []struct {
		name string
		card Card
		row  int
		col  int
		want bool
	}{
		{"successor same suit", Card{Suit: SuitHearts, Rank: RankEight}, 0, 1, true},
		{"wrong suit", Card{Suit: SuitClubs, Rank: RankEight}, 0, 1, false},
		{"rank too high", Card{Suit: SuitHearts, Rank: RankNine}, 0, 1, false},
		{"rank too low", Card{Suit: SuitHearts, Rank: RankSeven}, 0, 1, false},
		{"king blocks everything", Card{Suit: SuitSpades, Rank: RankAce}, 1, 1, false},
		{"gap to the left", Card{Suit: SuitHearts, Rank: RankTwo}, 2, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPlaceCard(tt.card, tt.row, tt.col, &g); got != tt.want {
				t.Errorf("CanPlaceCard = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanPlaceCardAfterKingAlwaysFalse(t *testing.T) {
	var g Grid
	g[3][5] = tc(SuitDiamonds, RankKing)

	for _, suit := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			if CanPlaceCard(Card{Suit: suit, Rank: r}, 3, 6, &g) {
				t.Fatalf("card %s%d accepted right of a King", suit, r)
			}
		}
	}
}

func TestLockedPrefixLen(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *Grid)
		want  int
	}{
		{
			name:  "empty row",
			build: func(g *Grid) {},
			want:  0,
		},
		{
			name: "row not starting with two",
			build: func(g *Grid) {
				setRun(g, 0, SuitSpades, RankThree, RankFour, RankFive)
			},
			want: 0,
		},
		{
			name: "two alone",
			build: func(g *Grid) {
				g[0][0] = tc(SuitHearts, RankTwo)
				g[0][1] = tc(SuitClubs, RankNine)
			},
			want: 1,
		},
		{
			name: "run broken by suit",
			build: func(g *Grid) {
				setRun(g, 0, SuitHearts, RankTwo, RankThree)
				g[0][2] = tc(SuitClubs, RankFour)
			},
			want: 2,
		},
		{
			name: "run broken by gap then sequential again",
			build: func(g *Grid) {
				setRun(g, 0, SuitHearts, RankTwo, RankThree, RankFour)
				g[0][4] = tc(SuitHearts, RankSix)
				g[0][5] = tc(SuitHearts, RankSeven)
			},
			want: 3,
		},
		{
			name: "full row two to king",
			build: func(g *Grid) {
				setRun(g, 0, SuitDiamonds,
					RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
					RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing)
			},
			want: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grid
			tt.build(&g)
			if got := lockedPrefixLen(&g, 0); got != tt.want {
				t.Errorf("lockedPrefixLen = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLockedCardsOnlyFromTheLeft(t *testing.T) {
	var g Grid
	setRun(&g, 0, SuitHearts, RankTwo, RankThree, RankFour)
	g[0][4] = tc(SuitHearts, RankSix) // past the break, stays unlocked
	setRun(&g, 1, SuitSpades, RankFive, RankSix, RankSeven)

	locked := LockedCards(&g)
	if len(locked) != 3 {
		t.Fatalf("locked %d cards, want 3", len(locked))
	}
	for col := 0; col < 3; col++ {
		if _, ok := locked[g[0][col].ID]; !ok {
			t.Errorf("row 0 col %d not locked", col)
		}
	}
	if _, ok := locked[g[0][4].ID]; ok {
		t.Errorf("card past the break is locked")
	}
	if _, ok := locked[g[1][0].ID]; ok {
		t.Errorf("row without a leading two has locked cards")
	}
}

func TestScoreAgreesWithLockedCards(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewBoard(rng)
		for i := 0; i < 3; i++ {
			assertScoreMatchesLocked(t, &g, seed)
			g = Reshuffle(&g, rng)
		}
		assertScoreMatchesLocked(t, &g, seed)
	}
}

func assertScoreMatchesLocked(t *testing.T, g *Grid, seed int64) {
	t.Helper()
	locked := LockedCards(g)
	sum := 0
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			if c := g[row][col]; c != nil {
				if _, ok := locked[c.ID]; ok {
					sum += RankValue(c.Rank)
				}
			}
		}
	}
	if score := CalculateScore(g); score != sum {
		t.Fatalf("seed %d: score %d disagrees with locked-card sum %d", seed, score, sum)
	}
}

func TestIsWinExactness(t *testing.T) {
	g := wonGrid()
	if !IsWin(&g) {
		t.Fatalf("complete board not recognized as a win")
	}

	t.Run("card in trailing gap", func(t *testing.T) {
		mod := g.Clone()
		mod[0][GridCols-1] = tc(SuitHearts, RankAce)
		if IsWin(&mod) {
			t.Errorf("win with an occupied last column")
		}
	})
	t.Run("wrong rank mid-row", func(t *testing.T) {
		mod := g.Clone()
		mod[1][5] = tc(SuitDiamonds, RankTen)
		if IsWin(&mod) {
			t.Errorf("win with an out-of-order rank")
		}
	})
	t.Run("wrong suit mid-row", func(t *testing.T) {
		mod := g.Clone()
		mod[2][8] = tc(SuitHearts, RankTen)
		if IsWin(&mod) {
			t.Errorf("win with a foreign suit in the run")
		}
	})
	t.Run("gap before last column", func(t *testing.T) {
		mod := g.Clone()
		mod[3][4] = nil
		if IsWin(&mod) {
			t.Errorf("win with an interior gap")
		}
	})
}

func TestScoreCompleteHeartsRow(t *testing.T) {
	var g Grid
	setRun(&g, 0, SuitHearts,
		RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
		RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing)
	// Remaining rows never start with a Two, so they contribute nothing.
	setRun(&g, 1, SuitSpades, RankNine, RankTen)
	setRun(&g, 2, SuitClubs, RankKing)

	// 2+3+...+13
	if score := CalculateScore(&g); score != 90 {
		t.Fatalf("score = %d, want 90", score)
	}

	locked := LockedCards(&g)
	if len(locked) != 12 {
		t.Fatalf("locked %d cards, want 12", len(locked))
	}
	for col := 0; col < 12; col++ {
		if _, ok := locked[g[0][col].ID]; !ok {
			t.Errorf("hearts run card at col %d not locked", col)
		}
	}
}

func TestLegalMoves(t *testing.T) {
	var g Grid
	setRun(&g, 0, SuitHearts, RankTwo, RankThree)
	// Active gap at (0,2); the four of hearts sits in row 1.
	g[1][0] = tc(SuitHearts, RankFour)
	g[1][1] = tc(SuitSpades, RankKing)
	// Gap at (1,2) is dead; gaps further right are inactive or dead.

	moves := LegalMoves(&g)

	var fillsRun bool
	for _, m := range moves {
		if m.To == (Position{Row: 1, Col: 2}) {
			t.Fatalf("move offered into a dead gap")
		}
		if m.To == (Position{Row: 0, Col: 2}) && m.Card.Rank == RankFour && m.Card.Suit == SuitHearts {
			fillsRun = true
		}
	}
	if !fillsRun {
		t.Errorf("four of hearts into (0,2) not offered, moves: %v", moves)
	}
}
