package domain

// Phase represents the lifecycle stage of a round.
type Phase string

const (
	// PhasePlaying indicates the round is in progress.
	PhasePlaying Phase = "playing"
	// PhaseWon indicates every row was completed.
	PhaseWon Phase = "won"
	// PhaseEnded indicates the round was lost: stuck with no shuffles left.
	PhaseEnded Phase = "ended"
)

// Round holds the authoritative state of one dealt board.
type Round struct {
	Grid         Grid
	Phase        Phase
	ShufflesLeft int
	Moves        int
}
