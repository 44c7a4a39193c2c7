package ports

import "blocktower/internal/app"

// Transport is the contract a wire adapter fulfills to drive rooms without
// the domain or use-case layer knowing anything about the underlying
// networking framework. The Nakama match handler is the
// concrete realization; a future websocket or in-process test adapter can
// implement the same shape.
type Transport interface {
	// Broadcast sends an event to every connection in a room, unless the
	// event carries its own Recipients list, in which case delivery is
	// restricted to those connection ids.
	Broadcast(roomName string, event app.Event) error
}
