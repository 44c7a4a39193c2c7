package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"blocktower/internal/app"
	"blocktower/internal/config"
	"blocktower/internal/domain"
	"blocktower/internal/ports"
	"blocktower/internal/registry"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is the JSON label every match instance publishes, letting the
// join_room/quick_play RPCs filter matches by room name and phase.
type MatchLabel struct {
	Room  string `json:"room"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for one Nakama match.
// Each match hosts exactly one Room; parallelism across rooms falls out of
// Nakama running one goroutine per match.
type MatchState struct {
	Room       *domain.Room
	Registry   *registry.Registry
	Service    *app.Service
	Presences  map[string]runtime.Presence // connID (session id) -> presence
	Account    *NakamaAccountAdapter
	ScoreStore ports.ScoreStore
	Identity   *app.IdentityService

	DropIntervalMs int
	TickRateHz     int
	ticksPerDrop   int
	tickCount      int64

	scoresRecorded bool
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit creates the room this match instance hosts.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}

	roomName, _ := params["room"].(string)
	if roomName == "" {
		roomName = "room-" + time.Now().Format("150405.000000000")
	}

	reg := registry.New()
	room := domain.NewRoom(roomName)
	room.SetCapacity(config.RoomCapacity())
	reg.Seed(room)

	tickRateHz := 5
	dropIntervalMs := config.DropIntervalMs()
	ticksPerDrop := dropIntervalMs * tickRateHz / 1000
	if ticksPerDrop < 1 {
		ticksPerDrop = 1
	}

	gc := config.GetGameConfig()
	identitySecret, identityIssuer := "blocktower-dev-secret", "blocktower"
	if gc != nil && gc.IdentitySecret != "" {
		identitySecret = gc.IdentitySecret
	}
	if gc != nil && gc.IdentityIssuer != "" {
		identityIssuer = gc.IdentityIssuer
	}
	grace := time.Duration(config.ReconnectGraceMs()) * time.Millisecond

	state := &MatchState{
		Room:           room,
		Registry:       reg,
		Service:        app.NewService(reg),
		Presences:      make(map[string]runtime.Presence),
		Account:        NewNakamaAccountAdapter(nk),
		ScoreStore:     NewScoreStoreAdapter(ctx, nk),
		Identity:       app.NewIdentityService(identitySecret, identityIssuer, grace),
		DropIntervalMs: dropIntervalMs,
		TickRateHz:     tickRateHz,
		ticksPerDrop:   ticksPerDrop,
	}

	labelBytes, err := json.Marshal(MatchLabel{Room: roomName, Phase: string(domain.PhaseWaiting)})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Info("MatchInit: room %q created", roomName)
	return state, tickRateHz, string(labelBytes)
}

// MatchJoinAttempt accepts every socket. Join validation (RoomFull,
// GameInProgress, NameTaken) happens once the client actually sends a
// joinGame frame, so a reconnecting player isn't blocked at the socket layer
// before their identity is known.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	if _, ok := state.(*MatchState); !ok {
		return state, false, "state not found"
	}
	// Seat-cap and phase validation happen on the joinGame frame itself
	// (domain.Room.Join returns RoomFull/GameInProgress/NameTaken), so every
	// socket is accepted here.
	return state, true, ""
}

// MatchJoin records the new presence. Domain player creation is deferred
// until the client sends a joinGame frame: the socket connecting
// and the player joining the room are distinct events.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	for _, p := range presences {
		matchState.Presences[p.GetSessionId()] = p
	}
	return matchState
}

// MatchLeave queues a synthetic Leave for every departing presence and
// terminates the match once its room is empty.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	for _, p := range presences {
		connID := p.GetSessionId()
		delete(matchState.Presences, connID)
		for _, ev := range matchState.Service.Leave(connID) {
			mh.dispatch(ctx, matchState, dispatcher, logger, ev)
		}
	}
	if matchState.Room.Empty() {
		logger.Info("MatchLeave: room %q empty, terminating match", matchState.Room.Name)
		return nil
	}
	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLoop drains inbound frames and, once per gravity interval, advances
// the room's tick.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.tickCount++

	for _, msg := range messages {
		mh.safeHandleFrame(ctx, matchState, dispatcher, logger, msg.GetSessionId(), msg.GetData())
	}

	if matchState.Room.Phase == domain.PhasePlaying && matchState.tickCount%int64(matchState.ticksPerDrop) == 0 {
		for _, ev := range matchState.Service.Tick(matchState.Room.Name) {
			mh.dispatch(ctx, matchState, dispatcher, logger, ev)
		}
	}

	return matchState
}

// safeHandleFrame runs handleFrame behind a recover boundary so a panic
// triggered by one malformed or unexpected frame only logs an error instead
// of taking down the whole match (and, since InitModule is a single
// process-wide plugin load, every other room in it).
func (mh *matchHandler) safeHandleFrame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, connID string, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("safeHandleFrame: recovered panic handling frame from %s: %v", connID, r)
		}
	}()
	mh.handleFrame(ctx, state, dispatcher, logger, connID, raw)
}

// handleFrame decodes one client frame and drives the use-case layer.
// Malformed frames and unrecognized event names both resolve to a
// connection-scoped UnknownCommand error.
func (mh *matchHandler) handleFrame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, connID string, raw []byte) {
	frame, err := decodeFrame(raw)
	if err != nil {
		mh.dispatch(ctx, state, dispatcher, logger, unknownCommandEvent(connID, err.Error()))
		return
	}

	var results []app.Event
	switch frame.Event {
	case "joinGame":
		var d JoinGameData
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			results = []app.Event{unknownCommandEvent(connID, "malformed joinGame data")}
			break
		}
		results = state.Service.Join(connID, state.Room.Name, d.PlayerName)
		results = append(results, mh.issueIdentityToken(state, connID, logger)...)
		mh.persistDisplayName(ctx, state, connID, d.PlayerName, logger)

	case "rejoinGame":
		var d RejoinData
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			results = []app.Event{unknownCommandEvent(connID, "malformed rejoinGame data")}
			break
		}
		results = []app.Event{mh.handleRejoin(state, connID, d.Token)}

	case "startGame":
		results = state.Service.Start(connID, time.Now().UnixNano())

	case "restartGame":
		results = state.Service.Restart(connID)

	case "movePiece":
		var d MovePieceData
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			results = []app.Event{unknownCommandEvent(connID, "malformed movePiece data")}
			break
		}
		results = state.Service.Move(connID, d.Direction)

	case "rotatePiece":
		results = state.Service.Rotate(connID)

	case "hardDrop":
		results = state.Service.HardDrop(connID)

	case "playerReady":
		// Advisory only; the room doesn't track a ready flag.
		return

	case "gameAction":
		canonical, data, err := parseGameAction(frame.Data)
		if err != nil {
			results = []app.Event{unknownCommandEvent(connID, err.Error())}
			break
		}
		switch canonical {
		case "movePiece":
			results = state.Service.Move(connID, data.Direction)
		case "rotatePiece":
			results = state.Service.Rotate(connID)
		case "hardDrop":
			results = state.Service.HardDrop(connID)
		}

	default:
		results = []app.Event{unknownCommandEvent(connID, "unknown event: "+frame.Event)}
	}

	for _, ev := range results {
		mh.dispatch(ctx, state, dispatcher, logger, ev)
	}
}

// persistDisplayName saves the name a player chose for this room back onto
// their Nakama account, best-effort, so it carries over to their next
// session. Only runs once the join itself has actually seated a player.
func (mh *matchHandler) persistDisplayName(ctx context.Context, state *MatchState, connID, name string, logger runtime.Logger) {
	if state.Room.Player(connID) == nil {
		return
	}
	presence, ok := state.Presences[connID]
	if !ok {
		return
	}
	if err := state.Account.SetDisplayName(ctx, presence.GetUserId(), name); err != nil {
		logger.Warn("persistDisplayName: failed for %s: %v", presence.GetUserId(), err)
	}
}

// issueIdentityToken mints a reconnection token for connID once they've
// successfully joined, so a new session id can take over the seat through a
// rejoinGame frame within the grace window. That only works while connID is
// still seated: MatchLeave removes a dropped connection's player at once.
// Failure to mint is logged, not fatal.
func (mh *matchHandler) issueIdentityToken(state *MatchState, connID string, logger runtime.Logger) []app.Event {
	if state.Room.Player(connID) == nil {
		return nil
	}
	token, err := state.Identity.IssueToken(connID, state.Room.Name)
	if err != nil {
		logger.Warn("issueIdentityToken: failed for %s: %v", connID, err)
		return nil
	}
	return []app.Event{{
		Kind:       app.EventIdentityToken,
		Payload:    app.IdentityTokenPayload{Token: token},
		Recipients: []string{connID},
	}}
}

// handleRejoin verifies token and, if valid, rebinds the player it names
// from its old connection id onto newConnID.
func (mh *matchHandler) handleRejoin(state *MatchState, newConnID, token string) app.Event {
	claims, err := state.Identity.VerifyToken(token)
	if err != nil {
		return unknownCommandEvent(newConnID, "invalid or expired rejoin token")
	}
	if claims.RoomName != state.Room.Name {
		return unknownCommandEvent(newConnID, "rejoin token is for a different room")
	}
	if _, ok := state.Room.Rebind(claims.ConnID, newConnID); !ok {
		return unknownCommandEvent(newConnID, "no matching player for rejoin token")
	}
	state.Registry.Rebind(claims.ConnID, newConnID)
	return app.Event{
		Kind:       app.EventRejoined,
		Payload:    app.RejoinedPayload{Players: state.Room.PlayerInfos()},
		Recipients: []string{newConnID},
	}
}

func unknownCommandEvent(connID, message string) app.Event {
	return app.Event{
		Kind:       app.EventError,
		Payload:    app.ErrorPayload{Code: string(domain.UnknownCommand), Message: message},
		Recipients: []string{connID},
	}
}

// dispatch routes ev through a ports.Transport bound to dispatcher, then
// runs the side effects (score persistence, label refresh) some domain
// events trigger. The transport is rebuilt on every call because Nakama
// hands matchHandler a fresh dispatcher per lifecycle invocation; only
// state.Presences carries over.
func (mh *matchHandler) dispatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	transport := NewDispatcherTransport(dispatcher, state.Presences)
	if err := transport.Broadcast(state.Room.Name, ev); err != nil {
		name := string(ev.DomainKind)
		if ev.Kind != "" {
			name = string(ev.Kind)
		}
		logger.Error("dispatch: broadcast of %q failed: %v", name, err)
		return
	}

	mh.handleSideEffects(ctx, state, logger, ev)
	switch ev.DomainKind {
	case domain.EvGameStarted, domain.EvGameEnded, domain.EvRoomReset:
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handleSideEffects(ctx context.Context, state *MatchState, logger runtime.Logger, ev app.Event) {
	switch ev.DomainKind {
	case domain.EvGameStarted:
		state.scoresRecorded = false
	case domain.EvGameEnded:
		if state.scoresRecorded {
			return
		}
		state.scoresRecorded = true
		data, ok := ev.Payload.(domain.GameEndedData)
		if !ok || state.ScoreStore == nil {
			return
		}
		durationSec := state.Room.ElapsedSeconds()
		for _, p := range data.Players {
			if err := state.ScoreStore.RecordScore(ctx, p.ID, p.Name, p.Score, p.LinesCleared, durationSec); err != nil {
				logger.Warn("handleSideEffects: failed to record score for %s: %v", p.ID, err)
			}
		}
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(MatchLabel{Room: state.Room.Name, Phase: string(state.Room.Phase)})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
