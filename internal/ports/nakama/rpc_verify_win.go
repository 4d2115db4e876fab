package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gaps/internal/app"
	"gaps/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// VerifyWinRequest carries a win attestation token for validation.
type VerifyWinRequest struct {
	Token string `json:"token"`
}

// VerifyWinResponse reports whether the token is authentic and its claims.
type VerifyWinResponse struct {
	Valid   bool   `json:"valid"`
	UserID  string `json:"user_id,omitempty"`
	MatchID string `json:"match_id,omitempty"`
	Score   int    `json:"score,omitempty"`
}

// rpcVerifyWin validates a win token minted by the match handler. Intended
// for external services (tournaments, audits) holding a player-presented
// token.
func rpcVerifyWin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var request VerifyWinRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", fmt.Errorf("malformed verify_win payload: %w", err)
	}
	if request.Token == "" {
		return "", fmt.Errorf("token is required")
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["gaps_attest_secret"]
	if secret == "" {
		return "", fmt.Errorf("win attestation is not configured")
	}

	attest := app.NewAttestService(secret, config.GetAttestIssuer())
	claims, err := attest.VerifyWinToken(request.Token)
	if err != nil {
		logger.Debug("rpcVerifyWin: Rejected token: %v", err)
		b, _ := json.Marshal(VerifyWinResponse{Valid: false})
		return string(b), nil
	}

	b, _ := json.Marshal(VerifyWinResponse{
		Valid:   true,
		UserID:  claims.UserID,
		MatchID: claims.MatchID,
		Score:   claims.Score,
	})
	return string(b), nil
}
