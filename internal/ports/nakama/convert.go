package nakama

import (
	"sort"

	"gaps/internal/domain"
)

// toWireCard maps a domain card to its wire representation.
func toWireCard(card domain.Card) WireCard {
	return WireCard{
		ID:   card.ID,
		Suit: string(card.Suit),
		Rank: domain.RankValue(card.Rank),
	}
}

// toWireGrid maps the board to its wire representation; gaps become nulls.
func toWireGrid(g *domain.Grid) WireGrid {
	out := make(WireGrid, domain.GridRows)
	for row := 0; row < domain.GridRows; row++ {
		out[row] = make([]*WireCard, domain.GridCols)
		for col := 0; col < domain.GridCols; col++ {
			if c := g[row][col]; c != nil {
				wc := toWireCard(*c)
				out[row][col] = &wc
			}
		}
	}
	return out
}

func toWirePosition(p domain.Position) WirePosition {
	return WirePosition{Row: p.Row, Col: p.Col}
}

func toWireMoves(moves []domain.Move) []WireMove {
	out := make([]WireMove, len(moves))
	for i, m := range moves {
		out[i] = WireMove{Card: toWireCard(m.Card), To: toWirePosition(m.To)}
	}
	return out
}

// lockedIDs flattens the locked set into a sorted slice for stable payloads.
func lockedIDs(locked map[string]struct{}) []string {
	ids := make([]string, 0, len(locked))
	for id := range locked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
