package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenRoundTripsThroughVerify(t *testing.T) {
	svc := NewIdentityService("secret", "blocktower", time.Minute)
	token, err := svc.IssueToken("conn-a", "r1")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "conn-a", claims.ConnID)
	assert.Equal(t, "r1", claims.RoomName)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewIdentityService("secret-a", "blocktower", time.Minute)
	verifier := NewIdentityService("secret-b", "blocktower", time.Minute)

	token, err := issuer.IssueToken("conn-a", "r1")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpiredToken(t *testing.T) {
	svc := NewIdentityService("secret", "blocktower", time.Nanosecond)
	token, err := svc.IssueToken("conn-a", "r1")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestIssueTokenRequiresConnID(t *testing.T) {
	svc := NewIdentityService("secret", "blocktower", time.Minute)
	_, err := svc.IssueToken("", "r1")
	assert.Error(t, err)
}

func TestNewIdentityServiceFallsBackToDefaultGrace(t *testing.T) {
	svc := NewIdentityService("secret", "blocktower", 0)
	assert.Equal(t, DefaultGrace, svc.grace)
}
