package ports

import "context"

// RoundResult summarizes a finished round for stats bookkeeping.
type RoundResult struct {
	Won          bool
	Score        int
	Moves        int
	ShufflesUsed int
}

// StatsPort accumulates per-user play statistics.
type StatsPort interface {
	// RecordRound folds a finished round into the user's aggregates.
	RecordRound(ctx context.Context, userID string, result RoundResult) error
}
