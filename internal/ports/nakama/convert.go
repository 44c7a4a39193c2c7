package nakama

import (
	"encoding/json"
	"fmt"

	"blocktower/internal/domain"
)

// ClientFrame is an inbound wire frame: every client message
// carries an event name and an opaque data object, decoded on demand into
// the concrete payload the event expects.
type ClientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerFrame is an outbound wire frame.
type ServerFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func encodeFrame(event string, data any) ([]byte, error) {
	return json.Marshal(ServerFrame{Event: event, Data: data})
}

func decodeFrame(raw []byte) (*ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if f.Event == "" {
		return nil, fmt.Errorf("frame missing event name")
	}
	return &f, nil
}

// JoinGameData is the payload of a joinGame frame.
type JoinGameData struct {
	Room       string `json:"room"`
	PlayerName string `json:"playerName"`
}

// RoomOnlyData is the payload shape shared by startGame, restartGame and
// playerReady, all of which only carry the room name.
type RoomOnlyData struct {
	Room string `json:"room"`
}

// RejoinData is the payload of a rejoinGame frame, sent from a new session
// id to take over a player who is still seated under the token's
// connection id.
type RejoinData struct {
	Token string `json:"token"`
}

// IdentityTokenData is the payload of the identityToken frame the server
// sends a player right after a successful joinGame, for them to present
// back in a future rejoinGame from a new session.
type IdentityTokenData struct {
	Token string `json:"token"`
}

// MovePieceData is the payload of a movePiece frame.
type MovePieceData struct {
	Direction domain.Direction `json:"direction"`
}

// GameActionData is the payload of the alternate gameAction frame vocabulary:
// type selects move/rotate/hardDrop, and direction applies only to type
// "move".
type GameActionData struct {
	Type      string           `json:"type"`
	Direction domain.Direction `json:"direction"`
}

// parseGameAction translates a gameAction frame into the equivalent
// canonical event name and data payload, or an error if type is not one of
// the three recognized actions.
func parseGameAction(raw json.RawMessage) (event string, data GameActionData, err error) {
	if err = json.Unmarshal(raw, &data); err != nil {
		return "", data, fmt.Errorf("malformed gameAction data: %w", err)
	}
	switch data.Type {
	case "move":
		return "movePiece", data, nil
	case "rotate":
		return "rotatePiece", data, nil
	case "hardDrop":
		return "hardDrop", data, nil
	default:
		return "", data, fmt.Errorf("unrecognized gameAction type %q", data.Type)
	}
}
