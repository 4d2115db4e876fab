package nakama

import (
	"context"
	"fmt"

	"gaps/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLeaderboardAdapter implements ports.LeaderboardPort using Nakama's
// leaderboard system.
type NakamaLeaderboardAdapter struct {
	nk            runtime.NakamaModule
	leaderboardID string
}

// NewNakamaLeaderboardAdapter creates a new leaderboard adapter.
func NewNakamaLeaderboardAdapter(nk runtime.NakamaModule, leaderboardID string) *NakamaLeaderboardAdapter {
	return &NakamaLeaderboardAdapter{nk: nk, leaderboardID: leaderboardID}
}

// SubmitScore writes a winning score as a leaderboard record.
func (a *NakamaLeaderboardAdapter) SubmitScore(ctx context.Context, userID, username string, score int64, metadata map[string]interface{}) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}

	_, err := a.nk.LeaderboardRecordWrite(ctx, a.leaderboardID, userID, username, score, 0, metadata, nil)
	if err != nil {
		return fmt.Errorf("failed to write leaderboard record for user %s: %w", userID, err)
	}
	return nil
}

var _ ports.LeaderboardPort = (*NakamaLeaderboardAdapter)(nil)
