package domain

// Phase is the Room lifecycle stage.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Direction is a lateral/soft-drop move request.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Down  Direction = "down"
)

// DefaultDropIntervalMs is the gravity tick period once a game starts.
const DefaultDropIntervalMs = 1000

// DefaultRoomCapacity is the optional seat cap enforced by the registry
// (RoomFull is opt-in; internal/config wires this value).
const DefaultRoomCapacity = 4

// MinPlayersToStart is the minimum roster size Start requires.
const MinPlayersToStart = 1

// Room is the authoritative per-match state machine: phase, roster, shared
// piece bag, and the game rules that react to gravity ticks and player
// commands. A Room is not safe for concurrent use by design: every mutation
// must be serialized by whatever hosts the Room (the Nakama match's own
// per-tick single-threaded loop, in this build).
type Room struct {
	Name  string
	Phase Phase

	players []*Player // insertion order
	byID    map[string]*Player

	bag            *PieceBag
	seed           int64
	dropIntervalMs int
	capacity       int
	elapsedTicks   int64

	Winner *Player
}

// NewRoom creates an empty, waiting room.
func NewRoom(name string) *Room {
	return &Room{
		Name:           name,
		Phase:          PhaseWaiting,
		byID:           make(map[string]*Player),
		dropIntervalMs: DefaultDropIntervalMs,
		capacity:       DefaultRoomCapacity,
	}
}

// SetCapacity overrides the default seat cap (0 disables the cap).
func (r *Room) SetCapacity(n int) { r.capacity = n }

// ElapsedSeconds returns how long the current (or most recently finished)
// game has run, derived from the number of gravity ticks applied so far.
// Every player in a room starts and ends together, so this one figure
// stands in for game duration when recording scores.
func (r *Room) ElapsedSeconds() float64 {
	return float64(r.elapsedTicks) * float64(r.dropIntervalMs) / 1000
}

// Players returns the roster in join order. Callers must not mutate it.
func (r *Room) Players() []*Player { return r.players }

// Player looks up a roster member by connection id.
func (r *Room) Player(id string) *Player { return r.byID[id] }

// PlayerInfos renders the whole roster as wire PlayerInfo values.
func (r *Room) PlayerInfos() []PlayerInfo {
	out := make([]PlayerInfo, len(r.players))
	for i, p := range r.players {
		out[i] = p.Info(r.Name)
	}
	return out
}

// Join adds a new player to the room. The first joiner becomes
// host. Rejects duplicate names, a full room, or a room mid-game.
func (r *Room) Join(id, name string) (*Player, *CommandError) {
	if r.Phase == PhasePlaying {
		return nil, NewCommandError(GameInProgress, "room is mid-game")
	}
	for _, p := range r.players {
		if p.Name == name {
			return nil, NewCommandError(NameTaken, "name already in use in this room")
		}
	}
	if r.capacity > 0 && len(r.players) >= r.capacity {
		return nil, NewCommandError(RoomFull, "room is full")
	}

	p := NewPlayer(id, name)
	if len(r.players) == 0 {
		p.Host = true
	}
	r.players = append(r.players, p)
	r.byID[id] = p
	return p, nil
}

// Rebind reassigns an existing player from oldID to newID, preserving their
// board, score and host status. It only moves a player who is still
// seated; once Leave has removed them there is nothing to rebind.
// It reports false if oldID has no player or newID is already taken.
func (r *Room) Rebind(oldID, newID string) (*Player, bool) {
	if oldID == newID {
		p, ok := r.byID[oldID]
		return p, ok
	}
	if _, taken := r.byID[newID]; taken {
		return nil, false
	}
	p, ok := r.byID[oldID]
	if !ok {
		return nil, false
	}
	delete(r.byID, oldID)
	p.ID = newID
	r.byID[newID] = p
	return p, true
}

// Leave removes a player. It reports whether the departing player was host
// and, if so, the newly promoted host (nil if the room is now empty).
func (r *Room) Leave(id string) (left *Player, newHost *Player) {
	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	left = r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.byID, id)

	if left.Host && len(r.players) > 0 {
		r.players[0].Host = true
		newHost = r.players[0]
	}
	return left, newHost
}

// Empty reports whether the room has no members left.
func (r *Room) Empty() bool { return len(r.players) == 0 }

// Start transitions waiting -> playing. seed roots the shared
// piece bag; callers typically pass wall-clock time or a fixed value for
// reproducible tests.
func (r *Room) Start(seed int64) ([]Event, *CommandError) {
	if r.Phase != PhaseWaiting {
		return nil, NewCommandError(BadPhase, "room is not waiting")
	}
	if len(r.players) < MinPlayersToStart {
		return nil, NewCommandError(BadPhase, "not enough players")
	}

	r.seed = seed
	r.bag = NewPieceBag(seed)
	r.Winner = nil
	r.elapsedTicks = 0

	for _, p := range r.players {
		p.resetForStart(r.bag)
	}

	pieces := make([]StartedPieces, len(r.players))
	for i, p := range r.players {
		pieces[i] = StartedPieces{PlayerID: p.ID, CurrentPiece: p.Current.Wire(), NextPiece: p.Next.Wire()}
	}

	r.Phase = PhasePlaying
	return []Event{{
		Kind: EvGameStarted,
		Data: GameStartedData{Players: r.PlayerInfos(), CurrentPieces: pieces},
	}}, nil
}

// Restart resets a finished room back to waiting with the same roster,
// rather than jumping straight to playing, so the host can re-confirm
// before the next game.
func (r *Room) Restart() ([]Event, *CommandError) {
	if r.Phase != PhaseFinished {
		return nil, NewCommandError(BadPhase, "room has not finished")
	}
	r.Phase = PhaseWaiting
	r.Winner = nil
	for _, p := range r.players {
		p.Board = NewBoard()
		p.Current = nil
		p.Next = nil
		p.Cursor = 0
		p.Score = 0
		p.LinesCleared = 0
		p.Alive = false
	}
	return []Event{{Kind: EvRoomReset, Data: RoomResetData{Players: r.PlayerInfos()}}}, nil
}

// Tick advances gravity by one row for every alive player, in roster order.
// Locking, clearing, penalty distribution, spawning and topout/game-end are
// all handled inline, matching a single tick's worth of physics for the
// whole room.
func (r *Room) Tick() []Event {
	if r.Phase != PhasePlaying {
		return nil
	}
	r.elapsedTicks++
	var events []Event
	for _, p := range r.players {
		if !p.Alive {
			continue
		}
		events = append(events, r.gravityStep(p)...)
		events = append(events, r.checkGameEnd()...)
		if r.Phase != PhasePlaying {
			break
		}
	}
	return events
}

// gravityStep drops p's current piece by one row, or locks it if it can't
// fall further, running the full lock/clear/spawn/topout sequence.
func (r *Room) gravityStep(p *Player) []Event {
	if IsValid(p.Board, p.Current, p.Current.X, p.Current.Y+1) {
		p.Current.Y++
		return []Event{{Kind: EvBoardUpdate, Data: boardUpdate(p)}}
	}
	return r.lockAndSpawn(p)
}

// lockAndSpawn burns the current piece into the board, clears lines,
// distributes penalties, spawns the next piece, and detects topout.
func (r *Room) lockAndSpawn(p *Player) []Event {
	var events []Event

	p.Board = Lock(p.Board, p.Current)
	newBoard, cleared := ClearLines(p.Board)
	p.Board = newBoard
	p.Score += 100 * cleared
	p.LinesCleared += cleared

	if cleared >= 2 {
		events = append(events, r.distributePenalty(p, cleared-1)...)
	}

	p.advancePiece(r.bag)
	if !IsValid(p.Board, p.Current, p.Current.X, p.Current.Y) {
		p.Alive = false
		events = append(events, Event{Kind: EvPlayerLost, Data: PlayerLostData{PlayerID: p.ID}})
	}

	events = append(events, Event{Kind: EvBoardUpdate, Data: boardUpdate(p)})
	return events
}

// distributePenalty pushes rows penalty rows onto every other living
// player's board and kills anyone whose current piece no longer fits.
func (r *Room) distributePenalty(source *Player, rows int) []Event {
	if rows <= 0 {
		return nil
	}
	var events []Event
	var affected []*Player
	for _, opp := range r.players {
		if opp.ID == source.ID || !opp.Alive {
			continue
		}
		opp.Board = InjectPenalty(opp.Board, rows)
		affected = append(affected, opp)

		if opp.Current != nil && !IsValid(opp.Board, opp.Current, opp.Current.X, opp.Current.Y) {
			opp.Alive = false
			events = append(events, Event{Kind: EvPlayerLost, Data: PlayerLostData{PlayerID: opp.ID}})
		}
	}
	if len(affected) == 0 {
		return events
	}
	infos := make([]PlayerInfo, len(affected))
	for i, opp := range affected {
		infos[i] = opp.Info(r.Name)
	}
	penaltyEvent := Event{
		Kind: EvPenaltyLinesAdded,
		Data: PenaltyLinesAddedData{TargetPlayerID: source.ID, PenaltyLines: rows, AffectedPlayers: infos},
	}
	return append([]Event{penaltyEvent}, events...)
}

// checkGameEnd counts alive players and transitions to finished if at most
// one remains.
func (r *Room) checkGameEnd() []Event {
	if r.Phase != PhasePlaying {
		return nil
	}
	var alive []*Player
	for _, p := range r.players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	if len(alive) > 1 {
		return nil
	}

	r.Phase = PhaseFinished
	var winnerInfo *PlayerInfo
	if len(alive) == 1 {
		r.Winner = alive[0]
		info := alive[0].Info(r.Name)
		winnerInfo = &info
	} else {
		r.Winner = nil
	}
	return []Event{{Kind: EvGameEnded, Data: GameEndedData{Winner: winnerInfo, Players: r.PlayerInfos()}}}
}

// Move applies a lateral move or soft drop for the player owning connID
// Illegal moves (into a wall or a locked cell) are silent
// no-ops, never errors. Commands from a dead player or outside `playing`
// are also silently ignored.
func (r *Room) Move(connID string, dir Direction) []Event {
	p := r.activePlayer(connID)
	if p == nil {
		return nil
	}
	dx, dy := 0, 0
	switch dir {
	case Left:
		dx = -1
	case Right:
		dx = 1
	case Down:
		dy = 1
	default:
		return nil
	}
	nx, ny := p.Current.X+dx, p.Current.Y+dy
	if !IsValid(p.Board, p.Current, nx, ny) {
		return nil
	}
	p.Current.X, p.Current.Y = nx, ny
	return []Event{{Kind: EvPieceMoved, Data: boardUpdate(p)}}
}

// Rotate applies a 90-degree clockwise rotation if the resulting shape fits
// No wall kicks: rejection leaves the piece unchanged.
func (r *Room) Rotate(connID string) []Event {
	p := r.activePlayer(connID)
	if p == nil {
		return nil
	}
	rotated := &Piece{Kind: p.Current.Kind, Shape: Rotated(p.Current.Shape), X: p.Current.X, Y: p.Current.Y}
	if !IsValid(p.Board, rotated, rotated.X, rotated.Y) {
		return nil
	}
	p.Current.Shape = rotated.Shape
	return []Event{{Kind: EvPieceRotated, Data: boardUpdate(p)}}
}

// HardDrop slams the current piece down and immediately runs the
// lock/clear/spawn/topout sequence.
func (r *Room) HardDrop(connID string) []Event {
	p := r.activePlayer(connID)
	if p == nil {
		return nil
	}
	for IsValid(p.Board, p.Current, p.Current.X, p.Current.Y+1) {
		p.Current.Y++
	}

	beforeLines := p.LinesCleared
	events := r.lockAndSpawn(p)
	cleared := p.LinesCleared - beforeLines

	// The last event lockAndSpawn appends is always the boardUpdate; upgrade
	// it in place to a pieceDropped event carrying linesCleared.
	last := len(events) - 1
	events[last] = Event{
		Kind: EvPieceDropped,
		Data: PieceDroppedData{BoardUpdateData: events[last].Data.(BoardUpdateData), LinesCleared: cleared},
	}

	events = append(events, r.checkGameEnd()...)
	return events
}

// activePlayer resolves connID to a live, in-game player, or nil if the
// command should be silently ignored (wrong connection, dead player, or
// the room isn't playing).
func (r *Room) activePlayer(connID string) *Player {
	if r.Phase != PhasePlaying {
		return nil
	}
	p := r.byID[connID]
	if p == nil || !p.Alive {
		return nil
	}
	return p
}
