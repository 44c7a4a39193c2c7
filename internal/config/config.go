package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"blocktower/internal/domain"
)

// GameConfig holds the tunables that would otherwise be scattered as magic
// numbers through the domain and transport layers: drop speed, room seat
// cap, and the reconnection grace window.
type GameConfig struct {
	DropIntervalMs   int    `json:"drop_interval_ms"`
	RoomCapacity     int    `json:"room_capacity"`
	ReconnectGraceMs int    `json:"reconnect_grace_ms"`
	IdentitySecret   string `json:"identity_secret"`
	IdentityIssuer   string `json:"identity_issuer"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. It is
// safe to call multiple times; only the first call's path takes effect.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil if
// LoadGameConfig was never called (or failed).
func GetGameConfig() *GameConfig {
	return cfg
}

// DropIntervalMs returns the configured gravity period, falling back to the
// domain default when no config was loaded.
func DropIntervalMs() int {
	if cfg == nil || cfg.DropIntervalMs <= 0 {
		return domain.DefaultDropIntervalMs
	}
	return cfg.DropIntervalMs
}

// RoomCapacity returns the configured seat cap, falling back to the domain
// default when no config was loaded.
func RoomCapacity() int {
	if cfg == nil || cfg.RoomCapacity <= 0 {
		return domain.DefaultRoomCapacity
	}
	return cfg.RoomCapacity
}

// ReconnectGraceMs returns the configured reconnection grace window in
// milliseconds, falling back to app.DefaultGrace when no config was loaded.
func ReconnectGraceMs() int {
	if cfg == nil || cfg.ReconnectGraceMs <= 0 {
		return 30_000
	}
	return cfg.ReconnectGraceMs
}
