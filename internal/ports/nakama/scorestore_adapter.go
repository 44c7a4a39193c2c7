package nakama

import (
	"context"
	"encoding/json"

	"blocktower/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// LeaderboardID is the single all-time leaderboard every finished game's
// scores are written to.
const LeaderboardID = "blocktower_scores"

// ScoreStoreAdapter implements ports.ScoreStore on top of a Nakama
// leaderboard, written once per finished game.
type ScoreStoreAdapter struct {
	nk runtime.NakamaModule
}

// NewScoreStoreAdapter creates the leaderboard, if it doesn't already
// exist, and returns an adapter bound to it.
func NewScoreStoreAdapter(ctx context.Context, nk runtime.NakamaModule) *ScoreStoreAdapter {
	_ = nk.LeaderboardCreate(ctx, LeaderboardID, true, "desc", "best", "", nil, false)
	return &ScoreStoreAdapter{nk: nk}
}

// RecordScore writes playerID's final score into the leaderboard, using the
// record's subscore for linesCleared (a natural tie-breaker between equal
// scores) and its metadata for durationSec. Nakama's "best" operator keeps
// the highest of any two writes for the same owner, so replays never
// regress a player's recorded best.
func (a *ScoreStoreAdapter) RecordScore(ctx context.Context, playerID, name string, score, linesCleared int, durationSec float64) error {
	metadata := map[string]interface{}{"durationSec": durationSec}
	_, err := a.nk.LeaderboardRecordWrite(ctx, LeaderboardID, playerID, name, int64(score), int64(linesCleared), metadata, nil)
	return err
}

// TopScores returns the top limit leaderboard entries.
func (a *ScoreStoreAdapter) TopScores(ctx context.Context, limit int) ([]ports.ScoreEntry, error) {
	records, _, _, _, err := a.nk.LeaderboardRecordsList(ctx, LeaderboardID, nil, limit, "", 0)
	if err != nil {
		return nil, err
	}
	out := make([]ports.ScoreEntry, len(records))
	for i, r := range records {
		var meta struct {
			DurationSec float64 `json:"durationSec"`
		}
		_ = json.Unmarshal([]byte(r.GetMetadata()), &meta)
		out[i] = ports.ScoreEntry{
			PlayerID:     r.GetOwnerId(),
			Name:         r.GetUsername().GetValue(),
			Score:        int(r.GetScore()),
			LinesCleared: int(r.GetSubscore()),
			DurationSec:  meta.DurationSec,
		}
	}
	return out, nil
}

var _ ports.ScoreStore = (*ScoreStoreAdapter)(nil)
