package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// AfterAuthenticateDevice is triggered after an account is authenticated. On
// first login it gives the account a display name derived from its device
// id, so a player who never sets a name still shows up as something more
// readable than a blank string in playerJoined/spectrum broadcasts.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	if !out.Created {
		return nil
	}

	userID := ""
	if ctxUserID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok {
		userID = ctxUserID
	}
	if userID == "" {
		resolvedID, err := extractUserIDFromToken(out.Token)
		if err != nil {
			logger.Error("AfterAuthenticateDevice: failed to extract user id from token: %v", err)
			return err
		}
		userID = resolvedID
	}

	displayName := defaultDisplayName(userID)
	account := NewNakamaAccountAdapter(nk)
	if err := account.SetDisplayName(ctx, userID, displayName); err != nil {
		logger.Warn("AfterAuthenticateDevice: failed to set default display name for %s: %v", userID, err)
	}
	return nil
}

// defaultDisplayName derives a short, stable, human-readable name from a
// user id, used until the player picks one via joinGame.playerName.
func defaultDisplayName(userID string) string {
	if len(userID) <= 6 {
		return "player-" + userID
	}
	return "player-" + userID[:6]
}

// extractUserIDFromToken pulls the uid claim out of a Nakama session token
// without verifying its signature: Nakama itself already validated the
// token before this hook ever runs, so only the claims need decoding.
func extractUserIDFromToken(token string) (string, error) {
	var claims jwt.MapClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return "", fmt.Errorf("token claims missing uid")
	}

	return uid, nil
}
