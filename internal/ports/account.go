package ports

import "context"

// AccountPort persists a player's chosen display name onto their account,
// independent of any in-room Player state, so it survives across sessions.
// BlockTower never manages usernames itself (those come from device auth),
// so this is narrower than a general profile-update port.
type AccountPort interface {
	// SetDisplayName sets userID's display name, leaving every other
	// account field untouched. Returns an error if the update fails.
	SetDisplayName(ctx context.Context, userID, displayName string) error
}
