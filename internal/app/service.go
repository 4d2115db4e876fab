package app

import (
	"errors"
	"math/rand"
	"time"

	"gaps/internal/domain"
)

// Service contains the Gaps Solitaire use-cases operating on round state.
// The engine itself is pure; Service owns the round lifecycle and the
// random source so rounds are reproducible under a seeded rng.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying     = errors.New("round is not in the playing phase")
	ErrOutOfBounds    = errors.New("target position out of bounds")
	ErrCardNotFound   = errors.New("card not on the board")
	ErrCellOccupied   = errors.New("target cell is not a gap")
	ErrCardLocked     = errors.New("card is locked in its run")
	ErrIllegalMove    = errors.New("placement breaks adjacency rules")
	ErrNoShufflesLeft = errors.New("no shuffles remaining")
)

// StartRound deals a fresh board with the given shuffle budget.
func (s *Service) StartRound(shuffles int) (*domain.Round, []Event, error) {
	grid := domain.NewBoard(s.rng)
	round := &domain.Round{
		Grid:         grid,
		Phase:        domain.PhasePlaying,
		ShufflesLeft: shuffles,
	}

	events := []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Grid:         round.Grid,
			Score:        domain.CalculateScore(&round.Grid),
			Locked:       domain.LockedCards(&round.Grid),
			ShufflesLeft: round.ShufflesLeft,
		},
	}}
	// A fresh deal can, rarely, already be stuck.
	return round, append(events, s.settle(round)...), nil
}

// MoveCard relocates the identified card into the gap at (row, col) after
// running the full validation chain, then recomputes the derived state and
// emits the resulting events.
func (s *Service) MoveCard(round *domain.Round, cardID string, row, col int) ([]Event, error) {
	if round.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if !domain.InBounds(row, col) {
		return nil, ErrOutOfBounds
	}

	from, ok := round.Grid.Find(cardID)
	if !ok {
		return nil, ErrCardNotFound
	}
	if round.Grid[row][col] != nil {
		return nil, ErrCellOccupied
	}
	if _, locked := domain.LockedCards(&round.Grid)[cardID]; locked {
		return nil, ErrCardLocked
	}

	card := round.Grid[from.Row][from.Col]
	if !domain.CanPlaceCard(*card, row, col, &round.Grid) {
		return nil, ErrIllegalMove
	}

	round.Grid[row][col] = card
	round.Grid[from.Row][from.Col] = nil
	round.Moves++

	events := []Event{{
		Kind: EventCardMoved,
		Payload: CardMovedPayload{
			CardID: cardID,
			From:   from,
			To:     domain.Position{Row: row, Col: col},
			Score:  domain.CalculateScore(&round.Grid),
			Locked: domain.LockedCards(&round.Grid),
		},
	}}
	return append(events, s.settle(round)...), nil
}

// ReshuffleRound consumes one shuffle and redistributes the free zone.
func (s *Service) ReshuffleRound(round *domain.Round) ([]Event, error) {
	if round.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if round.ShufflesLeft <= 0 {
		return nil, ErrNoShufflesLeft
	}

	round.ShufflesLeft--
	round.Grid = domain.Reshuffle(&round.Grid, s.rng)

	events := []Event{{
		Kind: EventReshuffled,
		Payload: ReshuffledPayload{
			Grid:         round.Grid,
			Score:        domain.CalculateScore(&round.Grid),
			Locked:       domain.LockedCards(&round.Grid),
			ShufflesLeft: round.ShufflesLeft,
		},
	}}
	return append(events, s.settle(round)...), nil
}

// Hint returns every currently playable move.
func (s *Service) Hint(round *domain.Round) ([]domain.Move, error) {
	if round.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	return domain.LegalMoves(&round.Grid), nil
}

// settle re-checks win and stuck conditions after a mutation and advances
// the round phase, emitting the terminal or warning event that applies. A
// reshuffle can coincidentally complete the board, so it settles too.
func (s *Service) settle(round *domain.Round) []Event {
	if domain.IsWin(&round.Grid) {
		round.Phase = domain.PhaseWon
		return []Event{{
			Kind: EventRoundWon,
			Payload: RoundWonPayload{
				Score: domain.CalculateScore(&round.Grid),
				Moves: round.Moves,
			},
		}}
	}

	if !round.Grid.IsStuck() {
		return nil
	}
	if round.ShufflesLeft > 0 {
		return []Event{{
			Kind:    EventRoundStuck,
			Payload: RoundStuckPayload{ShufflesLeft: round.ShufflesLeft},
		}}
	}

	round.Phase = domain.PhaseEnded
	return []Event{{
		Kind: EventGameOver,
		Payload: GameOverPayload{
			Score: domain.CalculateScore(&round.Grid),
			Moves: round.Moves,
		},
	}}
}
