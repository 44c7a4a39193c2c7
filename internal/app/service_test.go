package app

import (
	"testing"

	"blocktower/internal/domain"
	"blocktower/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceJoinBroadcastsPlayerJoined(t *testing.T) {
	s := NewService(registry.New())
	events := s.Join("a", "r1", "alice")
	require.Len(t, events, 1)
	assert.Equal(t, domain.EvPlayerJoined, events[0].DomainKind)
	assert.Empty(t, events[0].Recipients)
}

func TestServiceJoinNameCollisionIsConnectionScopedError(t *testing.T) {
	s := NewService(registry.New())
	s.Join("a", "r1", "alice")

	events := s.Join("b", "r1", "alice")
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Kind)
	assert.Equal(t, []string{"b"}, events[0].Recipients)
}

func TestServiceStartRejectsNonHost(t *testing.T) {
	s := NewService(registry.New())
	s.Join("a", "r1", "alice")
	s.Join("b", "r1", "bob")

	events := s.Start("b", 1)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Kind)
	payload := events[0].Payload.(ErrorPayload)
	assert.Equal(t, string(domain.NotHost), payload.Code)
}

func TestServiceStartByHostSucceeds(t *testing.T) {
	s := NewService(registry.New())
	s.Join("a", "r1", "alice")

	events := s.Start("a", 1)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EvGameStarted, events[0].DomainKind)
}

func TestServiceStartOfUnknownConnIsUnknownRoomError(t *testing.T) {
	s := NewService(registry.New())
	events := s.Start("ghost", 1)
	require.Len(t, events, 1)
	payload := events[0].Payload.(ErrorPayload)
	assert.Equal(t, string(domain.UnknownRoom), payload.Code)
}

func TestServiceMoveIsSilentNoopForUnknownConn(t *testing.T) {
	s := NewService(registry.New())
	events := s.Move("ghost", domain.Left)
	assert.Nil(t, events)
}

func TestServiceLeavePromotesNewHostAndClearsIndex(t *testing.T) {
	reg := registry.New()
	s := NewService(reg)
	s.Join("a", "r1", "alice")
	s.Join("b", "r1", "bob")

	events := s.Leave("a")
	require.Len(t, events, 2)
	assert.Equal(t, domain.EvPlayerLeft, events[0].DomainKind)
	assert.Equal(t, domain.EvNewHost, events[1].DomainKind)

	_, ok := reg.RoomForConn("a")
	assert.False(t, ok)
}

func TestServiceLeaveOfUnknownConnIsNoop(t *testing.T) {
	s := NewService(registry.New())
	events := s.Leave("ghost")
	assert.Nil(t, events)
}

func TestServiceRestartRequiresFinishedRoom(t *testing.T) {
	s := NewService(registry.New())
	s.Join("a", "r1", "alice")
	s.Start("a", 1)

	events := s.Restart("a")
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Kind)
	payload := events[0].Payload.(ErrorPayload)
	assert.Equal(t, string(domain.BadPhase), payload.Code)
}
