package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickPlayResponse is the payload returned to clients requesting a match.
type QuickPlayResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// rpcQuickPlay returns the caller's own open solitaire match so an
// interrupted round can resume, or creates a fresh one.
func rpcQuickPlay(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", fmt.Errorf("rpc requires an authenticated user")
	}

	query := fmt.Sprintf("+label.game:%s +label.%s:%s", LabelGameName, MatchLabelKeyOwner, userID)

	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickPlay [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickPlayResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		logger.Info("rpcQuickPlay [User:%s]: Resuming match %s", userID, resp.MatchID)
		return string(b), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameGaps, map[string]interface{}{
		MatchLabelKeyOwner: userID,
	})
	if err != nil {
		logger.Error("rpcQuickPlay [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	resp := QuickPlayResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	logger.Info("rpcQuickPlay [User:%s]: Created match %s", userID, matchID)
	return string(b), nil
}
