package nakama

const (
	// MatchNameGaps is the authoritative match handler name registered with Nakama.
	MatchNameGaps = "gaps_solitaire"

	// RpcQuickPlay finds the caller's open solitaire match or creates one.
	RpcQuickPlay = "quick_play"
	// RpcVerifyWin validates a win attestation token.
	RpcVerifyWin = "verify_win"

	// LabelGameName is the game tag advertised in match labels.
	LabelGameName = "gaps"

	// MatchLabelKeyOwner is the label key quick_play queries to find a
	// player's own open match.
	MatchLabelKeyOwner = "owner"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound  int64 = 1
	OpMoveCard    int64 = 2
	OpReshuffle   int64 = 3
	OpRequestHint int64 = 4

	// Server -> Client events
	OpRoundStarted int64 = 101
	OpCardMoved    int64 = 102
	OpReshuffled   int64 = 103
	OpRoundStuck   int64 = 104
	OpRoundWon     int64 = 105
	OpGameOver     int64 = 106
	OpHint         int64 = 107
	OpGameError    int64 = 108
)
