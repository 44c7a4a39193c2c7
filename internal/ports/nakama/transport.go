package nakama

import (
	"blocktower/internal/app"
	"blocktower/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// DispatcherTransport implements ports.Transport over a single Nakama
// match's runtime.MatchDispatcher. It is the concrete realization
// SPEC_FULL.md §4.6 describes: matchHandler never calls
// dispatcher.BroadcastMessage itself, it builds one of these per dispatch
// and goes through Broadcast instead, the same way the domain and app
// layers only ever see the ports.Transport contract.
type DispatcherTransport struct {
	dispatcher runtime.MatchDispatcher
	presences  map[string]runtime.Presence
}

// NewDispatcherTransport binds dispatcher to the match's live connID ->
// Presence map. roomName is accepted on Broadcast only to satisfy the
// ports.Transport contract: a Nakama match dispatcher already scopes every
// BroadcastMessage call to the one match (and so the one room) it belongs
// to, so it isn't otherwise consulted here.
func NewDispatcherTransport(dispatcher runtime.MatchDispatcher, presences map[string]runtime.Presence) *DispatcherTransport {
	return &DispatcherTransport{dispatcher: dispatcher, presences: presences}
}

// Broadcast encodes event as a wire frame and sends it to every connection
// in event.Recipients, or to the whole match if Recipients is empty.
func (t *DispatcherTransport) Broadcast(roomName string, event app.Event) error {
	name := string(event.DomainKind)
	if event.Kind != "" {
		name = string(event.Kind)
	}

	bytes, err := encodeFrame(name, event.Payload)
	if err != nil {
		return err
	}

	var recipients []runtime.Presence
	if len(event.Recipients) > 0 {
		for _, connID := range event.Recipients {
			if p, ok := t.presences[connID]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return nil
		}
	}
	return t.dispatcher.BroadcastMessage(OpCodeFrame, bytes, recipients, nil, true)
}

var _ ports.Transport = (*DispatcherTransport)(nil)
