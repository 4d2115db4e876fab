package app

import "gaps/internal/domain"

// EventKind identifies emitted round events for dispatch to the port layer.
type EventKind string

const (
	EventRoundStarted EventKind = "round_started"
	EventCardMoved    EventKind = "card_moved"
	EventReshuffled   EventKind = "reshuffled"
	EventRoundStuck   EventKind = "round_stuck"
	EventRoundWon     EventKind = "round_won"
	EventGameOver     EventKind = "game_over"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// RoundStartedPayload carries the freshly dealt board.
type RoundStartedPayload struct {
	Grid         domain.Grid
	Score        int
	Locked       map[string]struct{}
	ShufflesLeft int
}

// CardMovedPayload describes a committed single-card relocation and the
// recomputed derived state.
type CardMovedPayload struct {
	CardID string
	From   domain.Position
	To     domain.Position
	Score  int
	Locked map[string]struct{}
}

// ReshuffledPayload carries the redistributed board.
type ReshuffledPayload struct {
	Grid         domain.Grid
	Score        int
	Locked       map[string]struct{}
	ShufflesLeft int
}

// RoundStuckPayload signals that no gap can accept a card but shuffles remain.
type RoundStuckPayload struct {
	ShufflesLeft int
}

// RoundWonPayload signals a completed board.
type RoundWonPayload struct {
	Score int
	Moves int
}

// GameOverPayload signals a lost round: stuck with no shuffles remaining.
type GameOverPayload struct {
	Score int
	Moves int
}
