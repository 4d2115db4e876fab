package nakama

// Wire DTOs for client/server payloads. Everything on the socket is JSON.

// WireCard is a card as sent to clients.
type WireCard struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

// WireGrid is the 4x13 board; null entries are gaps.
type WireGrid [][]*WireCard

// WirePosition addresses a grid cell.
type WirePosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WireMove is a hint entry: a card and the gap it can fill.
type WireMove struct {
	Card WireCard     `json:"card"`
	To   WirePosition `json:"to"`
}

// MoveCardRequest asks to relocate a card into a gap.
type MoveCardRequest struct {
	CardID string `json:"card_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// RoundStartedEvent carries a freshly dealt board. It doubles as the resume
// snapshot, so Phase tells the client whether the round is still playable.
type RoundStartedEvent struct {
	Grid         WireGrid `json:"grid"`
	Phase        string   `json:"phase"`
	Score        int      `json:"score"`
	Locked       []string `json:"locked"`
	ShufflesLeft int      `json:"shuffles_left"`
}

// CardMovedEvent confirms a committed move with recomputed derived state.
type CardMovedEvent struct {
	CardID string       `json:"card_id"`
	From   WirePosition `json:"from"`
	To     WirePosition `json:"to"`
	Score  int          `json:"score"`
	Locked []string     `json:"locked"`
}

// ReshuffledEvent carries the redistributed board.
type ReshuffledEvent struct {
	Grid         WireGrid `json:"grid"`
	Score        int      `json:"score"`
	Locked       []string `json:"locked"`
	ShufflesLeft int      `json:"shuffles_left"`
}

// RoundStuckEvent warns that no gap can accept a card.
type RoundStuckEvent struct {
	ShufflesLeft int `json:"shuffles_left"`
}

// RoundWonEvent announces a completed board. Token is the signed win
// attestation when the server is configured with a secret.
type RoundWonEvent struct {
	Score int    `json:"score"`
	Moves int    `json:"moves"`
	Token string `json:"token,omitempty"`
}

// GameOverEvent announces a lost round.
type GameOverEvent struct {
	Score int `json:"score"`
	Moves int `json:"moves"`
}

// HintEvent lists the currently playable moves.
type HintEvent struct {
	Moves []WireMove `json:"moves"`
}

// GameErrorEvent reports a rejected operation to its sender.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Label is the match label advertised for quick-play queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
	Owner string `json:"owner"`
}
