package domain

// EventKind identifies a server->client (or server->room) event, matching
// the wire vocabulary the transport layer serializes.
type EventKind string

const (
	EvPlayerJoined      EventKind = "playerJoined"
	EvPlayerLeft        EventKind = "playerLeft"
	EvNewHost           EventKind = "newHost"
	EvGameStarted       EventKind = "gameStarted"
	EvBoardUpdate       EventKind = "boardUpdate"
	EvPieceMoved        EventKind = "pieceMoved"
	EvPieceRotated      EventKind = "pieceRotated"
	EvPieceDropped      EventKind = "pieceDropped"
	EvPenaltyLinesAdded EventKind = "penaltyLinesAdded"
	EvPlayerLost        EventKind = "playerLost"
	EvGameEnded         EventKind = "gameEnded"
	EvRoomReset         EventKind = "roomReset"
)

// Event is a room-scoped outcome of a Room operation. Recipients is nil for
// a room-wide broadcast; a non-nil, non-empty slice restricts delivery to
// those connection ids (used nowhere in the domain today, but kept for
// symmetry with the private-hand style delivery the transport layer needs
// for connection-scoped errors, which travel as app.Event instead).
type Event struct {
	Kind       EventKind
	Recipients []string
	Data       any
}

// PlayerInfo is the wire-level player summary.
type PlayerInfo struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	RoomName     string         `json:"roomName"`
	IsHost       bool           `json:"isHost"`
	IsAlive      bool           `json:"isAlive"`
	Score        int            `json:"score"`
	LinesCleared int            `json:"linesCleared"`
	Spectrum     [BoardCols]int `json:"spectrum"`
}

// Info renders a Player as its wire-level summary.
func (p *Player) Info(roomName string) PlayerInfo {
	return PlayerInfo{
		ID:           p.ID,
		Name:         p.Name,
		RoomName:     roomName,
		IsHost:       p.Host,
		IsAlive:      p.Alive,
		Score:        p.Score,
		LinesCleared: p.LinesCleared,
		Spectrum:     p.Spectrum(),
	}
}

// WirePiece is the wire-level piece representation.
type WirePiece struct {
	Type  string  `json:"type"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Shape [][]int `json:"shape"`
}

// Wire renders a Piece for the wire. A nil piece renders as a nil pointer
// (marshals to JSON null), matching the `currentPiece?` optional field.
func (p *Piece) Wire() *WirePiece {
	if p == nil {
		return nil
	}
	shape := make([][]int, len(p.Shape))
	for r, row := range p.Shape {
		shape[r] = make([]int, len(row))
		for c, filled := range row {
			if filled {
				shape[r][c] = 1
			}
		}
	}
	return &WirePiece{Type: p.Kind.String(), X: p.X, Y: p.Y, Shape: shape}
}

// PlayerJoinedData is the payload for EvPlayerJoined.
type PlayerJoinedData struct {
	Player  PlayerInfo   `json:"player"`
	Players []PlayerInfo `json:"players"`
}

// PlayerLeftData is the payload for EvPlayerLeft.
type PlayerLeftData struct {
	PlayerID string       `json:"playerId"`
	Players  []PlayerInfo `json:"players"`
}

// NewHostData is the payload for EvNewHost.
type NewHostData struct {
	Host PlayerInfo `json:"host"`
}

// StartedPieces is one player's opening hand, part of GameStartedData.
type StartedPieces struct {
	PlayerID     string     `json:"playerId"`
	CurrentPiece *WirePiece `json:"currentPiece"`
	NextPiece    *WirePiece `json:"nextPiece"`
}

// GameStartedData is the payload for EvGameStarted.
type GameStartedData struct {
	Players       []PlayerInfo    `json:"players"`
	CurrentPieces []StartedPieces `json:"currentPieces"`
}

// BoardUpdateData is the payload for EvBoardUpdate, EvPieceMoved and
// EvPieceRotated (all share this shape); EvPieceDropped adds LinesCleared.
type BoardUpdateData struct {
	PlayerID     string                       `json:"playerId"`
	Board        [BoardRows][BoardCols]string `json:"board"`
	Spectrum     [BoardCols]int               `json:"spectrum"`
	CurrentPiece *WirePiece                   `json:"currentPiece,omitempty"`
}

// PieceDroppedData is the payload for EvPieceDropped.
type PieceDroppedData struct {
	BoardUpdateData
	LinesCleared int `json:"linesCleared"`
}

// PenaltyLinesAddedData is the payload for EvPenaltyLinesAdded.
type PenaltyLinesAddedData struct {
	TargetPlayerID  string       `json:"targetPlayerId"`
	PenaltyLines    int          `json:"penaltyLines"`
	AffectedPlayers []PlayerInfo `json:"affectedPlayers"`
}

// PlayerLostData is the payload for EvPlayerLost.
type PlayerLostData struct {
	PlayerID string `json:"playerId"`
}

// GameEndedData is the payload for EvGameEnded.
type GameEndedData struct {
	Winner  *PlayerInfo  `json:"winner"`
	Players []PlayerInfo `json:"players"`
}

// RoomResetData is the payload for EvRoomReset, sent when a finished room
// is put back into the waiting phase.
type RoomResetData struct {
	Players []PlayerInfo `json:"players"`
}

func boardUpdate(p *Player) BoardUpdateData {
	return BoardUpdateData{
		PlayerID:     p.ID,
		Board:        p.Board.Cells(),
		Spectrum:     p.Spectrum(),
		CurrentPiece: p.Current.Wire(),
	}
}
