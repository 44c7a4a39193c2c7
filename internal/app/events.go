package app

import "blocktower/internal/domain"

// EventKind names the transport-level events that never originate from the
// domain layer: the connection-scoped error and the reconnect events.
// Domain events travel in Event.DomainKind instead.
type EventKind string

const (
	EventError EventKind = "error"

	// EventIdentityToken and EventRejoined are transport-adapter concerns
	// (Nakama session churn), not domain events, so they carry their own
	// Kind rather than a DomainKind.
	EventIdentityToken EventKind = "identityToken"
	EventRejoined      EventKind = "rejoined"
)

// Event is what Service hands back to the transport layer to fan out: a
// domain event ready for broadcast, or a connection-scoped error destined
// for a single connection (errors are reported only to the
// originating connection and never mutate room state).
type Event struct {
	Kind       EventKind
	DomainKind domain.EventKind // set when Kind is a translated domain event
	Payload    any
	Recipients []string // nil/empty means broadcast to the whole room
}

// ErrorPayload is the wire payload for EventError.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IdentityTokenPayload is the wire payload for EventIdentityToken.
type IdentityTokenPayload struct {
	Token string `json:"token"`
}

// RejoinedPayload is the wire payload for EventRejoined, letting a
// reconnected client resynchronize its view of the roster under its new
// connection id.
type RejoinedPayload struct {
	Players []domain.PlayerInfo `json:"players"`
}

// fromDomain wraps a []domain.Event as broadcast []Event.
func fromDomain(events []domain.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{DomainKind: e.Kind, Payload: e.Data, Recipients: e.Recipients}
	}
	return out
}

// errorEvent builds a connection-scoped error Event for connID.
func errorEvent(connID string, cerr *domain.CommandError) Event {
	return Event{
		Kind:       EventError,
		Payload:    ErrorPayload{Code: string(cerr.Kind), Message: cerr.Error()},
		Recipients: []string{connID},
	}
}
