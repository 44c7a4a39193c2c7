package ports

import "context"

// ScoreEntry is one row of a leaderboard query result.
type ScoreEntry struct {
	PlayerID     string  `json:"playerId"`
	Name         string  `json:"name"`
	Score        int     `json:"score"`
	LinesCleared int     `json:"linesCleared"`
	DurationSec  float64 `json:"durationSec"`
}

// ScoreStore is an optional persistence surface: a room
// records the final score of every player once a game ends, and an admin
// surface can query the all-time top scores. Both are best-effort; a
// failing ScoreStore write never blocks or fails the game itself.
type ScoreStore interface {
	// RecordScore persists one player's final score for a finished game,
	// along with how many lines they cleared and how long the game ran.
	RecordScore(ctx context.Context, playerID, name string, score, linesCleared int, durationSec float64) error

	// TopScores returns up to limit entries ordered by score descending.
	TopScores(ctx context.Context, limit int) ([]ScoreEntry, error)
}
