package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcJoinRoom, rpcJoinRoom); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcQuickPlay, rpcQuickPlay)
}

// JoinRoomRequest is the payload of the join_room RPC.
type JoinRoomRequest struct {
	Room string `json:"room"`
}

// JoinRoomResponse is returned to the client so it can attach to the match
// socket and send a joinGame frame.
type JoinRoomResponse struct {
	MatchID string `json:"matchId"`
	IsNew   bool   `json:"isNew"`
}

// rpcJoinRoom finds the Nakama match currently hosting the named room
// (matched by label), or creates one if absent.
func rpcJoinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Room == "" {
		return "", fmt.Errorf("join_room: payload must include a non-empty room name")
	}

	query := fmt.Sprintf("+label.%s:%s", MatchLabelKeyRoom, req.Room)
	limit := 1
	authoritative := true

	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, query)
	if err != nil {
		logger.Error("join_room: MatchList failed for room %q: %v", req.Room, err)
		return "", err
	}
	if len(matches) > 0 {
		resp, _ := json.Marshal(JoinRoomResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(resp), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameBlockTower, map[string]interface{}{"room": req.Room})
	if err != nil {
		logger.Error("join_room: MatchCreate failed for room %q: %v", req.Room, err)
		return "", err
	}
	resp, _ := json.Marshal(JoinRoomResponse{MatchID: matchID, IsNew: true})
	return string(resp), nil
}
