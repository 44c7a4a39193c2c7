// Package app is the use-case layer between the transport adapter and the
// domain: it turns a (connID, command) pair into domain.Room mutations and
// renders the result as fan-out Events, keeping the transport adapter a
// thin translation layer between the wire and the domain room.
package app

import (
	"blocktower/internal/domain"
	"blocktower/internal/registry"
)

// Service drives one Registry's worth of rooms.
type Service struct {
	registry *registry.Registry
}

// NewService constructs a Service over reg.
func NewService(reg *registry.Registry) *Service {
	return &Service{registry: reg}
}

// Join adds connID to roomName under playerName, and returns the
// playerJoined broadcast on success or a connection-scoped error.
func (s *Service) Join(connID, roomName, playerName string) []Event {
	room, player, cerr := s.registry.Join(connID, roomName, playerName)
	if cerr != nil {
		return []Event{errorEvent(connID, cerr)}
	}
	return []Event{{
		DomainKind: domain.EvPlayerJoined,
		Payload: domain.PlayerJoinedData{
			Player:  player.Info(room.Name),
			Players: room.PlayerInfos(),
		},
	}}
}

// Leave removes connID from its room, returning playerLeft plus, if the
// departing player was host, a newHost event. Leaving a room that connID
// does not belong to is a silent no-op (mirrors the transport's own
// disconnect handling: nothing left to report).
func (s *Service) Leave(connID string) []Event {
	room, left, newHost := s.registry.Leave(connID)
	if room == nil || left == nil {
		return nil
	}
	events := []Event{{
		DomainKind: domain.EvPlayerLeft,
		Payload:    domain.PlayerLeftData{PlayerID: left.ID, Players: room.PlayerInfos()},
	}}
	if newHost != nil {
		events = append(events, Event{
			DomainKind: domain.EvNewHost,
			Payload:    domain.NewHostData{Host: newHost.Info(room.Name)},
		})
	}
	return events
}

// Start begins the game in connID's room. Only the host may start it;
// a non-host request is a connection-scoped NotHost error.
func (s *Service) Start(connID string, seed int64) []Event {
	room, ok := s.registry.RoomForConn(connID)
	if !ok {
		return []Event{errorEvent(connID, domain.NewCommandError(domain.UnknownRoom, "not in a room"))}
	}
	if p := room.Player(connID); p == nil || !p.Host {
		return []Event{errorEvent(connID, domain.NewCommandError(domain.NotHost, "only the host may start the game"))}
	}
	events, cerr := room.Start(seed)
	if cerr != nil {
		return []Event{errorEvent(connID, cerr)}
	}
	return fromDomain(events)
}

// Restart resets connID's finished room back to waiting (host-only, mirrors
// Start).
func (s *Service) Restart(connID string) []Event {
	room, ok := s.registry.RoomForConn(connID)
	if !ok {
		return []Event{errorEvent(connID, domain.NewCommandError(domain.UnknownRoom, "not in a room"))}
	}
	if p := room.Player(connID); p == nil || !p.Host {
		return []Event{errorEvent(connID, domain.NewCommandError(domain.NotHost, "only the host may restart the game"))}
	}
	events, cerr := room.Restart()
	if cerr != nil {
		return []Event{errorEvent(connID, cerr)}
	}
	return fromDomain(events)
}

// Move applies a lateral move or soft drop. Illegal or out-of-turn moves
// are silent no-ops, never errors.
func (s *Service) Move(connID string, dir domain.Direction) []Event {
	room, ok := s.registry.RoomForConn(connID)
	if !ok {
		return nil
	}
	return fromDomain(room.Move(connID, dir))
}

// Rotate applies a rotation (silent no-op on rejection).
func (s *Service) Rotate(connID string) []Event {
	room, ok := s.registry.RoomForConn(connID)
	if !ok {
		return nil
	}
	return fromDomain(room.Rotate(connID))
}

// HardDrop slams the current piece down (silent no-op if connID has no
// active piece to drop).
func (s *Service) HardDrop(connID string) []Event {
	room, ok := s.registry.RoomForConn(connID)
	if !ok {
		return nil
	}
	return fromDomain(room.HardDrop(connID))
}

// Tick advances gravity for the named room by one step. The transport
// adapter calls this once per match tick per room it owns.
func (s *Service) Tick(roomName string) []Event {
	room, ok := s.registry.RoomByName(roomName)
	if !ok {
		return nil
	}
	return fromDomain(room.Tick())
}
