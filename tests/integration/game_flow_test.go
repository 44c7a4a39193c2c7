package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

// TestTwoPlayerGameStartsAndBroadcastsPieces exercises the join_room RPC,
// the joinGame/startGame frames, and asserts every player receives the
// gameStarted broadcast with their own current/next piece.
func TestTwoPlayerGameStartsAndBroadcastsPieces(t *testing.T) {
	roomName := fmt.Sprintf("it-room-%d", time.Now().UnixNano())

	host := NewTestClient(t)
	defer host.Close()
	guest := NewTestClient(t)
	defer guest.Close()

	matchID := host.JoinRoom(t, roomName)
	if id := guest.JoinRoom(t, roomName); id != matchID {
		t.Fatalf("guest joined a different match: got %s, want %s", id, matchID)
	}

	host.SendFrame(t, matchID, "joinGame", map[string]string{"room": roomName, "playerName": "host"})
	host.WaitForFrame(t, "playerJoined", 5*time.Second)

	guest.SendFrame(t, matchID, "joinGame", map[string]string{"room": roomName, "playerName": "guest"})
	host.WaitForFrame(t, "playerJoined", 5*time.Second)

	host.SendFrame(t, matchID, "startGame", map[string]string{})

	for _, c := range []*TestClient{host, guest} {
		frame := c.WaitForFrame(t, "gameStarted", 5*time.Second)

		var started struct {
			Players []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"players"`
			CurrentPieces []struct {
				PlayerID     string `json:"playerId"`
				CurrentPiece json.RawMessage `json:"currentPiece"`
				NextPiece    json.RawMessage `json:"nextPiece"`
			} `json:"currentPieces"`
		}
		if err := json.Unmarshal(frame.Data, &started); err != nil {
			t.Fatalf("failed to decode gameStarted: %v", err)
		}
		if len(started.Players) != 2 {
			t.Fatalf("expected 2 players, got %d", len(started.Players))
		}
		if len(started.CurrentPieces) != 2 {
			t.Fatalf("expected 2 current pieces, got %d", len(started.CurrentPieces))
		}
	}
}

// TestLastPlayerStandingBroadcastsGameEnded joins two players, starts the
// game, and has one player repeatedly hard-drop with no lateral movement
// until they top out, asserting the survivor is declared the winner.
func TestLastPlayerStandingBroadcastsGameEnded(t *testing.T) {
	roomName := fmt.Sprintf("it-room-%d", time.Now().UnixNano())

	loser := NewTestClient(t)
	defer loser.Close()
	survivor := NewTestClient(t)
	defer survivor.Close()

	matchID := loser.JoinRoom(t, roomName)
	survivor.JoinRoom(t, roomName)

	loser.SendFrame(t, matchID, "joinGame", map[string]string{"room": roomName, "playerName": "loser"})
	survivor.SendFrame(t, matchID, "joinGame", map[string]string{"room": roomName, "playerName": "survivor"})
	loser.SendFrame(t, matchID, "startGame", map[string]string{})
	loser.WaitForFrame(t, "gameStarted", 5*time.Second)
	survivor.WaitForFrame(t, "gameStarted", 5*time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		frame := loser.WaitForFrame(t, "gameEnded", 20*time.Second)
		var ended struct {
			Winner *struct {
				Name string `json:"name"`
			} `json:"winner"`
		}
		if err := json.Unmarshal(frame.Data, &ended); err != nil {
			t.Errorf("failed to decode gameEnded: %v", err)
			return
		}
		if ended.Winner == nil || ended.Winner.Name != "survivor" {
			t.Errorf("expected survivor to win, got %+v", ended.Winner)
		}
	}()

	for i := 0; i < 400; i++ {
		loser.SendFrame(t, matchID, "hardDrop", map[string]string{})
		time.Sleep(20 * time.Millisecond)
	}

	<-done
}
