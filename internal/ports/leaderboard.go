package ports

import "context"

// LeaderboardPort submits verified round scores to the host's leaderboard.
type LeaderboardPort interface {
	// SubmitScore records a winning score for a user.
	SubmitScore(ctx context.Context, userID, username string, score int64, metadata map[string]interface{}) error
}
