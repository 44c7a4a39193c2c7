package registry

import (
	"sync"
	"testing"

	"blocktower/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCreatesRoomLazily(t *testing.T) {
	g := New()
	_, ok := g.RoomByName("r1")
	assert.False(t, ok)

	room, player, cerr := g.Join("a", "r1", "alice")
	require.Nil(t, cerr)
	require.NotNil(t, room)
	assert.Equal(t, "alice", player.Name)

	got, ok := g.RoomByName("r1")
	assert.True(t, ok)
	assert.Same(t, room, got)
}

func TestJoinRoutesSecondPlayerToSameRoom(t *testing.T) {
	g := New()
	room1, _, cerr := g.Join("a", "r1", "alice")
	require.Nil(t, cerr)

	room2, _, cerr := g.Join("b", "r1", "bob")
	require.Nil(t, cerr)
	assert.Same(t, room1, room2)
}

func TestConcurrentFirstJoinsCollapseToOneRoom(t *testing.T) {
	g := New()
	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d", "e"}
	for _, connID := range names {
		wg.Add(1)
		go func(connID, playerName string) {
			defer wg.Done()
			g.Join(connID, "r1", playerName)
		}(connID, connID+"-name")
	}
	wg.Wait()

	assert.Len(t, g.RoomNames(), 1)
	room, ok := g.RoomByName("r1")
	require.True(t, ok)
	// Five joiners for a room capped at DefaultRoomCapacity (4): the fifth
	// is turned away with RoomFull.
	assert.Len(t, room.Players(), domain.DefaultRoomCapacity)
}

func TestRoomForConnResolvesAfterJoin(t *testing.T) {
	g := New()
	room, _, cerr := g.Join("a", "r1", "alice")
	require.Nil(t, cerr)

	got, ok := g.RoomForConn("a")
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = g.RoomForConn("nobody")
	assert.False(t, ok)
}

func TestLeaveTearsDownEmptyRoom(t *testing.T) {
	g := New()
	g.Join("a", "r1", "alice")

	room, left, newHost := g.Leave("a")
	require.NotNil(t, room)
	assert.Equal(t, "a", left.ID)
	assert.Nil(t, newHost)

	_, ok := g.RoomByName("r1")
	assert.False(t, ok)
	_, ok = g.RoomForConn("a")
	assert.False(t, ok)
}

func TestLeaveKeepsRoomAliveWithRemainingPlayers(t *testing.T) {
	g := New()
	g.Join("a", "r1", "alice")
	g.Join("b", "r1", "bob")

	room, left, newHost := g.Leave("a")
	require.NotNil(t, room)
	assert.Equal(t, "a", left.ID)
	require.NotNil(t, newHost)
	assert.Equal(t, "b", newHost.ID)

	_, ok := g.RoomByName("r1")
	assert.True(t, ok)
}

func TestLeaveOfUnknownConnIsNoop(t *testing.T) {
	g := New()
	room, left, newHost := g.Leave("ghost")
	assert.Nil(t, room)
	assert.Nil(t, left)
	assert.Nil(t, newHost)
}

func TestRebindMovesConnIndexEntry(t *testing.T) {
	g := New()
	room, _, cerr := g.Join("a", "r1", "alice")
	require.Nil(t, cerr)

	g.Rebind("a", "a2")

	got, ok := g.RoomForConn("a2")
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = g.RoomForConn("a")
	assert.False(t, ok)
}

func TestSeedRegistersRoomWithoutLazyCreation(t *testing.T) {
	g := New()
	seeded := domain.NewRoom("r1")
	g.Seed(seeded)

	got, ok := g.RoomByName("r1")
	require.True(t, ok)
	assert.Same(t, seeded, got)
}

func TestRoomNamesSnapshotsCurrentRooms(t *testing.T) {
	g := New()
	g.Join("a", "r1", "alice")
	g.Join("b", "r2", "bob")

	names := g.RoomNames()
	assert.ElementsMatch(t, []string{"r1", "r2"}, names)
}
