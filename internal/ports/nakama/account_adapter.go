package nakama

import (
	"context"

	"blocktower/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter implements ports.AccountPort by writing a display
// name onto the account through Nakama's account API. The username
// argument to AccountUpdateId is always left blank: BlockTower players
// authenticate by device id and never pick a Nakama username, only the
// per-room display name shown in playerJoined/spectrum broadcasts.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// SetDisplayName updates userID's display name.
func (a *NakamaAccountAdapter) SetDisplayName(ctx context.Context, userID, displayName string) error {
	return a.nk.AccountUpdateId(ctx, userID, "", nil, displayName, "", "", "", "")
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
