package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"blocktower/internal/domain"
)

// rpcQuickPlay routes a player into any match whose room is still in the
// waiting phase, or creates a fresh one under a generated room name. Unlike
// join_room, the caller doesn't pick a room name.
func rpcQuickPlay(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := fmt.Sprintf("+label.%s:%s", MatchLabelKeyPhase, domain.PhaseWaiting)

	limit := 10
	authoritative := true

	matches, err := nk.MatchList(ctx, limit, authoritative, "", nil, nil, query)
	if err != nil {
		logger.Error("quick_play: MatchList failed: %v", err)
		return "", err
	}
	if len(matches) > 0 {
		resp, _ := json.Marshal(JoinRoomResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(resp), nil
	}

	room := quickPlayRoomName(ctx)
	matchID, err := nk.MatchCreate(ctx, MatchNameBlockTower, map[string]interface{}{"room": room})
	if err != nil {
		logger.Error("quick_play: MatchCreate failed: %v", err)
		return "", err
	}
	resp, _ := json.Marshal(JoinRoomResponse{MatchID: matchID, IsNew: true})
	return string(resp), nil
}

// quickPlayRoomName derives a room name for a freshly created quick-play
// match from the requesting user id, falling back to a fixed name.
func quickPlayRoomName(ctx context.Context) string {
	if userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok && userID != "" {
		return "quick-" + userID
	}
	return "quick-lobby"
}
