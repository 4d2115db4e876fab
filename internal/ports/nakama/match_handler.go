package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"gaps/internal/app"
	"gaps/internal/config"
	"gaps/internal/domain"
	"gaps/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// emptyTimeoutTicks is how long an abandoned match stays resumable before
// it terminates (ticks are 1s).
const emptyTimeoutTicks = 300

// MatchState holds the authoritative runtime state for a solitaire match.
// A match has exactly one seat; the owner may disconnect and resume until
// the empty timeout fires.
type MatchState struct {
	OwnerID          string                      `json:"owner_id"`
	Tick             int64                       `json:"tick"`
	EmptySinceTick   int64                       `json:"empty_since_tick"`
	ShufflesPerRound int                         `json:"shuffles_per_round"`
	Presences        map[string]runtime.Presence `json:"-"`
	App              *app.Service                `json:"-"`
	Attest           *app.AttestService          `json:"-"`
	Leaderboard      ports.LeaderboardPort       `json:"-"`
	Stats            ports.StatsPort             `json:"-"`
	Round            *domain.Round               `json:"-"`
}

func (ms *MatchState) occupied() bool {
	return len(ms.Presences) > 0
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing solitaire match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		ShufflesPerRound: config.GetShufflesPerRound(),
	}
	if nk != nil {
		state.Leaderboard = NewNakamaLeaderboardAdapter(nk, config.GetLeaderboardID())
		state.Stats = NewNakamaStatsAdapter(nk)
	}

	if owner, ok := params[MatchLabelKeyOwner].(string); ok {
		state.OwnerID = owner
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["gaps_shuffles_per_round"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.ShufflesPerRound = i
		}
	}
	if secret, ok := env["gaps_attest_secret"]; ok && secret != "" {
		state.Attest = app.NewAttestService(secret, config.GetAttestIssuer())
	}

	tickRate := 1
	return state, tickRate, marshalLabel(state, logger)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.occupied() {
		return state, false, "match occupied"
	}
	if matchState.OwnerID != "" && matchState.OwnerID != presence.GetUserId() {
		return state, false, "match belongs to another player"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.OwnerID == "" {
			matchState.OwnerID = p.GetUserId()
		}
		logger.Info("MatchJoin: Player %s joined.", p.GetUserId())
	}
	matchState.EmptySinceTick = 0

	mh.updateLabel(matchState, dispatcher, logger)

	// Resend the board to a resuming player so the client can rebuild.
	if matchState.Round != nil {
		mh.sendSnapshot(matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave keeps the match alive for a grace period so a disconnected
// player can resume their round via quick_play.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		logger.Debug("MatchLeave: Player %s left.", p.GetUserId())
	}
	if !matchState.occupied() {
		matchState.EmptySinceTick = tick
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	if !matchState.occupied() && matchState.EmptySinceTick > 0 && tick-matchState.EmptySinceTick >= emptyTimeoutTicks {
		logger.Info("MatchLoop: Terminating abandoned match.")
		return nil
	}

	for _, msg := range messages {
		if msg.GetUserId() != matchState.OwnerID {
			logger.Warn("MatchLoop: Message from non-owner %s ignored.", msg.GetUserId())
			continue
		}

		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpMoveCard:
			mh.handleMoveCard(ctx, matchState, dispatcher, logger, msg)
		case OpReshuffle:
			mh.handleReshuffle(ctx, matchState, dispatcher, logger, msg)
		case OpRequestHint:
			mh.handleRequestHint(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if state.Round != nil && state.Round.Phase == domain.PhasePlaying {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 409, "round already in progress")
		return
	}

	round, events, err := state.App.StartRound(state.ShufflesPerRound)
	if err != nil {
		logger.Error("handleStartRound: %v", err)
		return
	}
	state.Round = round

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	logger.Info("handleStartRound: Round started with %d shuffles.", round.ShufflesLeft)
}

func (mh *matchHandler) handleMoveCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if state.Round == nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 404, "no active round")
		return
	}

	var request MoveCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleMoveCard: Invalid request from %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, "malformed move request")
		return
	}

	events, err := state.App.MoveCard(state.Round, request.CardID, request.Row, request.Col)
	if err != nil {
		logger.Debug("handleMoveCard: Move rejected for %s: %v", msg.GetUserId(), err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleReshuffle(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if state.Round == nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 404, "no active round")
		return
	}

	events, err := state.App.ReshuffleRound(state.Round)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleRequestHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if state.Round == nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 404, "no active round")
		return
	}

	moves, err := state.App.Hint(state.Round)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), 400, err.Error())
		return
	}

	mh.sendToUser(state, dispatcher, logger, msg.GetUserId(), OpHint, HintEvent{Moves: toWireMoves(moves)})
}

// broadcastEvent converts an app event to its wire payload and dispatches it.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventRoundStarted:
		p := ev.Payload.(app.RoundStartedPayload)
		opCode = OpRoundStarted
		payload = RoundStartedEvent{
			Grid:         toWireGrid(&p.Grid),
			Phase:        string(domain.PhasePlaying),
			Score:        p.Score,
			Locked:       lockedIDs(p.Locked),
			ShufflesLeft: p.ShufflesLeft,
		}
	case app.EventCardMoved:
		p := ev.Payload.(app.CardMovedPayload)
		opCode = OpCardMoved
		payload = CardMovedEvent{
			CardID: p.CardID,
			From:   toWirePosition(p.From),
			To:     toWirePosition(p.To),
			Score:  p.Score,
			Locked: lockedIDs(p.Locked),
		}
	case app.EventReshuffled:
		p := ev.Payload.(app.ReshuffledPayload)
		opCode = OpReshuffled
		payload = ReshuffledEvent{
			Grid:         toWireGrid(&p.Grid),
			Score:        p.Score,
			Locked:       lockedIDs(p.Locked),
			ShufflesLeft: p.ShufflesLeft,
		}
	case app.EventRoundStuck:
		p := ev.Payload.(app.RoundStuckPayload)
		opCode = OpRoundStuck
		payload = RoundStuckEvent{ShufflesLeft: p.ShufflesLeft}
	case app.EventRoundWon:
		p := ev.Payload.(app.RoundWonPayload)
		opCode = OpRoundWon
		payload = RoundWonEvent{
			Score: p.Score,
			Moves: p.Moves,
			Token: mh.mintWinToken(ctx, state, logger, p.Score),
		}
		mh.reportResult(ctx, state, logger, ports.RoundResult{
			Won:          true,
			Score:        p.Score,
			Moves:        p.Moves,
			ShufflesUsed: mh.shufflesUsed(state),
		})
		mh.updateLabel(state, dispatcher, logger)
	case app.EventGameOver:
		p := ev.Payload.(app.GameOverPayload)
		opCode = OpGameOver
		payload = GameOverEvent{Score: p.Score, Moves: p.Moves}
		mh.reportResult(ctx, state, logger, ports.RoundResult{
			Won:          false,
			Score:        p.Score,
			Moves:        p.Moves,
			ShufflesUsed: mh.shufflesUsed(state),
		})
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

func (mh *matchHandler) shufflesUsed(state *MatchState) int {
	if state.Round == nil {
		return 0
	}
	return state.ShufflesPerRound - state.Round.ShufflesLeft
}

// mintWinToken signs a win attestation if a secret is configured.
func (mh *matchHandler) mintWinToken(ctx context.Context, state *MatchState, logger runtime.Logger, score int) string {
	if state.Attest == nil {
		return ""
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	token, err := state.Attest.GenerateWinToken(state.OwnerID, matchID, score)
	if err != nil {
		logger.Error("Failed to mint win token: %v", err)
		return ""
	}
	return token
}

// reportResult pushes the finished round into the leaderboard and stats.
func (mh *matchHandler) reportResult(ctx context.Context, state *MatchState, logger runtime.Logger, result ports.RoundResult) {
	if result.Won && state.Leaderboard != nil {
		username := state.OwnerID
		if p, ok := state.Presences[state.OwnerID]; ok {
			username = p.GetUsername()
		}
		metadata := map[string]interface{}{
			"moves":         result.Moves,
			"shuffles_used": result.ShufflesUsed,
		}
		if err := state.Leaderboard.SubmitScore(ctx, state.OwnerID, username, int64(result.Score), metadata); err != nil {
			logger.Error("Failed to submit leaderboard score: %v", err)
		}
	}
	if state.Stats != nil {
		if err := state.Stats.RecordRound(ctx, state.OwnerID, result); err != nil {
			logger.Error("Failed to record round stats: %v", err)
		}
	}
}

// sendSnapshot replays the current board to connected presences.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	grid := &state.Round.Grid
	payload := RoundStartedEvent{
		Grid:         toWireGrid(grid),
		Phase:        string(state.Round.Phase),
		Score:        domain.CalculateScore(grid),
		Locked:       lockedIDs(domain.LockedCards(grid)),
		ShufflesLeft: state.Round.ShufflesLeft,
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpRoundStarted, bytes, nil, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	mh.sendToUser(state, dispatcher, logger, userID, OpGameError, GameErrorEvent{Code: code, Message: message})
}

func (mh *matchHandler) sendToUser(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, opCode int64, payload any) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal payload for opcode %d: %v", opCode, err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send opcode %d to %s: presence not found", opCode, userID)
		return
	}
	dispatcher.BroadcastMessage(opCode, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(marshalLabel(state, logger)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

// marshalLabel derives the advertised label from match state.
func marshalLabel(state *MatchState, logger runtime.Logger) string {
	phase := "lobby"
	if state.Round != nil {
		phase = string(state.Round.Phase)
	}
	label := Label{
		Open:  !state.occupied(),
		Game:  LabelGameName,
		Phase: phase,
		Owner: state.OwnerID,
	}
	bytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("Failed to marshal label: %v", err)
		return ""
	}
	return string(bytes)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
