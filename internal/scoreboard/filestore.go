// Package scoreboard provides a ports.ScoreStore backed by a local JSON
// file, for running the game outside Nakama (local play, integration
// tests) where no leaderboard runtime is available.
package scoreboard

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"blocktower/internal/ports"
)

// FileStore persists scores to a single JSON file, keeping the highest
// score on record per player. All access is guarded by an in-process
// mutex; concurrent processes sharing the same path are not supported.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore writing to path. The file is created
// lazily on the first RecordScore call if it doesn't already exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() ([]ports.ScoreEntry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var entries []ports.ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStore) save(entries []ports.ScoreEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// RecordScore keeps the best of the player's previous score and score,
// along with the lines cleared and game duration for that run.
func (s *FileStore) RecordScore(ctx context.Context, playerID, name string, score, linesCleared int, durationSec float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	for i, e := range entries {
		if e.PlayerID == playerID {
			if score > e.Score {
				entries[i] = ports.ScoreEntry{PlayerID: playerID, Name: name, Score: score, LinesCleared: linesCleared, DurationSec: durationSec}
			}
			return s.save(entries)
		}
	}
	entries = append(entries, ports.ScoreEntry{PlayerID: playerID, Name: name, Score: score, LinesCleared: linesCleared, DurationSec: durationSec})
	return s.save(entries)
}

// TopScores returns up to limit entries, highest score first.
func (s *FileStore) TopScores(ctx context.Context, limit int) ([]ports.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

var _ ports.ScoreStore = (*FileStore)(nil)
