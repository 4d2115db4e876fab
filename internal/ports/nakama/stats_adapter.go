package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gaps/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection = "gaps_stats"
	statsKey        = "aggregate_v1"
)

// statsRecord is the stored per-user aggregate.
type statsRecord struct {
	RoundsPlayed  int    `json:"rounds_played"`
	RoundsWon     int    `json:"rounds_won"`
	BestScore     int    `json:"best_score"`
	TotalMoves    int    `json:"total_moves"`
	TotalShuffles int    `json:"total_shuffles"`
	UpdatedAt     string `json:"updated_at"`
}

// NakamaStatsAdapter implements ports.StatsPort on Nakama storage.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk}
}

// RecordRound folds a finished round into the user's stored aggregate. The
// write is guarded by the read version so concurrent updates fail loudly
// instead of losing rounds.
func (a *NakamaStatsAdapter) RecordRound(ctx context.Context, userID string, result ports.RoundResult) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}

	record, version, err := a.readRecord(ctx, userID)
	if err != nil {
		return err
	}

	record.RoundsPlayed++
	if result.Won {
		record.RoundsWon++
	}
	if result.Score > record.BestScore {
		record.BestScore = result.Score
	}
	record.TotalMoves += result.Moves
	record.TotalShuffles += result.ShufflesUsed
	record.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal stats record: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      statsCollection,
			Key:             statsKey,
			UserID:          userID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write stats for user %s: %w", userID, err)
	}
	return nil
}

func (a *NakamaStatsAdapter) readRecord(ctx context.Context, userID string) (statsRecord, string, error) {
	reads := []*runtime.StorageRead{
		{Collection: statsCollection, Key: statsKey, UserID: userID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return statsRecord{}, "", fmt.Errorf("failed to read stats for user %s: %w", userID, err)
	}

	if len(objects) == 0 {
		// First round for this user; "*" writes only if absent.
		return statsRecord{}, "*", nil
	}

	var record statsRecord
	if err := json.Unmarshal([]byte(objects[0].Value), &record); err != nil {
		return statsRecord{}, "", fmt.Errorf("failed to unmarshal stats for user %s: %w", userID, err)
	}
	return record, objects[0].Version, nil
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
