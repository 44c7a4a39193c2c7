package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350

	// OpCodeFrame matches internal/ports/nakama.OpCodeFrame: every JSON
	// {event, data} frame travels over this single opcode.
	OpCodeFrame = 1
)

// wireFrame mirrors internal/ports/nakama.ServerFrame/ClientFrame for the
// integration client, which doesn't import the server module's internal
// packages.
type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string
}

func NewTestClient(t *testing.T) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())
	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}

	socket := client.NewSocket()
	if err := socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("failed to connect socket: %v", err)
	}

	return &TestClient{Client: client, Session: session, Socket: socket, UserID: session.UserId}
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

// JoinRoom calls the join_room RPC for roomName and joins the returned
// match, returning the match id.
func (tc *TestClient) JoinRoom(t *testing.T, roomName string) string {
	payload, _ := json.Marshal(map[string]string{"room": roomName})
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "join_room", string(payload))
	if err != nil {
		t.Fatalf("rpc join_room failed: %v", err)
	}

	var resp struct {
		MatchID string `json:"matchId"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("failed to decode join_room response: %v", err)
	}
	if resp.MatchID == "" {
		t.Fatalf("join_room returned empty match id")
	}

	if _, err := tc.Socket.JoinMatch(context.Background(), nil, resp.MatchID, nil); err != nil {
		t.Fatalf("failed to join match %s: %v", resp.MatchID, err)
	}
	return resp.MatchID
}

// SendFrame marshals a {event, data} envelope and sends it as match state.
func (tc *TestClient) SendFrame(t *testing.T, matchID, event string, data interface{}) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal frame data: %v", err)
	}
	frame := wireFrame{Event: event, Data: dataBytes}
	payload, err := json.Marshal(frame)
	if err != nil {
		t.Fatalf("failed to marshal frame: %v", err)
	}
	if _, err := tc.Socket.SendMatchState(context.Background(), matchID, OpCodeFrame, payload, nil); err != nil {
		t.Fatalf("failed to send frame %q: %v", event, err)
	}
}

// WaitForFrame blocks until a frame with the given event name arrives, or
// timeout elapses.
func (tc *TestClient) WaitForFrame(t *testing.T, event string, timeout time.Duration) wireFrame {
	ch := make(chan wireFrame, 1)

	original := tc.Socket.OnMatchData
	tc.Socket.OnMatchData = func(data *rtapi.MatchData) {
		if original != nil {
			original(data)
		}
		if data.OpCode != OpCodeFrame {
			return
		}
		var frame wireFrame
		if err := json.Unmarshal(data.Data, &frame); err != nil {
			return
		}
		if frame.Event == event {
			select {
			case ch <- frame:
			default:
			}
		}
	}

	select {
	case frame := <-ch:
		return frame
	case <-time.After(timeout):
		t.Fatalf("timeout waiting for event %q", event)
		return wireFrame{}
	}
}
