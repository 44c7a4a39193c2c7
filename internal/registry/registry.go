// Package registry indexes rooms by name and connections by id, and routes
// inbound commands to the room that owns them.
package registry

import (
	"sync"

	"blocktower/internal/domain"

	"golang.org/x/sync/singleflight"
)

// Registry owns the roomName->Room and connID->roomName indexes. Its own
// critical section is short: index reads/writes, seating a joining player,
// and room creation and teardown. It never mutates Room game state directly: every
// method here that touches a *domain.Room hands that Room's own methods the
// job of mutating themselves, then returns to the caller for dispatch.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*domain.Room
	conns map[string]string // connID -> room name

	// creation collapses concurrent first-joins to the same room name into
	// a single domain.NewRoom call.
	creation singleflight.Group
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		rooms: make(map[string]*domain.Room),
		conns: make(map[string]string),
	}
}

// RoomByName returns the room, if any, currently registered under name.
func (g *Registry) RoomByName(name string) (*domain.Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[name]
	return r, ok
}

// RoomForConn returns the room, if any, that connID currently belongs to.
func (g *Registry) RoomForConn(connID string) (*domain.Room, bool) {
	g.mu.Lock()
	name, ok := g.conns[connID]
	g.mu.Unlock()
	if !ok {
		return nil, false
	}
	return g.RoomByName(name)
}

// getOrCreateRoom returns the named room, creating it lazily and
// idempotently under concurrent callers.
func (g *Registry) getOrCreateRoom(name string) *domain.Room {
	g.mu.Lock()
	if r, ok := g.rooms[name]; ok {
		g.mu.Unlock()
		return r
	}
	g.mu.Unlock()

	v, _, _ := g.creation.Do(name, func() (interface{}, error) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if r, ok := g.rooms[name]; ok {
			return r, nil
		}
		r := domain.NewRoom(name)
		g.rooms[name] = r
		return r, nil
	})
	return v.(*domain.Room)
}

// Join routes a join request to (creating if needed) the named room and
// records the connID -> room mapping on success. The room's own Join runs
// under the registry lock, so concurrent joins to one room are serialized.
func (g *Registry) Join(connID, roomName, playerName string) (*domain.Room, *domain.Player, *domain.CommandError) {
	room := g.getOrCreateRoom(roomName)

	g.mu.Lock()
	defer g.mu.Unlock()
	player, cerr := room.Join(connID, playerName)
	if cerr != nil {
		return room, nil, cerr
	}
	g.conns[connID] = roomName
	return room, player, nil
}

// Leave removes connID from whatever room it belongs to, tearing the room
// down if it becomes empty. Returns the room (nil if connID was
// unmapped), the departing player, and the newly promoted host if any.
func (g *Registry) Leave(connID string) (room *domain.Room, left *domain.Player, newHost *domain.Player) {
	g.mu.Lock()
	name, ok := g.conns[connID]
	if !ok {
		g.mu.Unlock()
		return nil, nil, nil
	}
	room = g.rooms[name]
	delete(g.conns, connID)
	g.mu.Unlock()

	if room == nil {
		return nil, nil, nil
	}
	left, newHost = room.Leave(connID)

	if room.Empty() {
		g.mu.Lock()
		if g.rooms[name] == room {
			delete(g.rooms, name)
		}
		g.mu.Unlock()
	}
	return room, left, newHost
}

// Rebind moves the connID index entry from oldID to newID after a
// successful domain.Room.Rebind, so RoomForConn keeps resolving for the
// player under their new connection id.
func (g *Registry) Rebind(oldID, newID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.conns[oldID]
	if !ok {
		return
	}
	delete(g.conns, oldID)
	g.conns[newID] = name
}

// Seed registers a pre-built room directly, bypassing lazy creation. Used
// by transports (like the Nakama adapter) that already own exactly one
// Room per Registry and want it present before any Join call.
func (g *Registry) Seed(room *domain.Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rooms[room.Name] = room
}

// RoomNames snapshots the currently registered room names, for admin/debug
// surfaces.
func (g *Registry) RoomNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		out = append(out, name)
	}
	return out
}
