package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig tunes round rules and score reporting.
type GameConfig struct {
	// ShufflesPerRound is the reshuffle budget granted at round start.
	ShufflesPerRound int `json:"shuffles_per_round"`
	// LeaderboardID is the Nakama leaderboard that receives winning scores.
	LeaderboardID string `json:"leaderboard_id"`
	// AttestIssuer is the issuer claim stamped into win attestation tokens.
	AttestIssuer string `json:"attest_issuer"`
}

const (
	defaultShufflesPerRound = 2
	defaultLeaderboardID    = "gaps_high_scores"
	defaultAttestIssuer     = "gaps"
)

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetShufflesPerRound returns the configured reshuffle budget or a safe default.
func GetShufflesPerRound() int {
	if cfg == nil || cfg.ShufflesPerRound <= 0 {
		return defaultShufflesPerRound
	}
	return cfg.ShufflesPerRound
}

// GetLeaderboardID returns the configured leaderboard id or a safe default.
func GetLeaderboardID() string {
	if cfg == nil || cfg.LeaderboardID == "" {
		return defaultLeaderboardID
	}
	return cfg.LeaderboardID
}

// GetAttestIssuer returns the configured attestation issuer or a safe default.
func GetAttestIssuer() string {
	if cfg == nil || cfg.AttestIssuer == "" {
		return defaultAttestIssuer
	}
	return cfg.AttestIssuer
}
