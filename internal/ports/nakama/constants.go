package nakama

const (
	// RpcJoinRoom is the Nakama RPC id clients call to find or create the
	// match hosting a named room.
	RpcJoinRoom = "join_room"

	// RpcQuickPlay is the Nakama RPC id clients call to be routed into any
	// room still accepting players, creating one if none exists.
	RpcQuickPlay = "quick_play"

	// MatchNameBlockTower is the authoritative match handler name registered
	// with Nakama. Each match instance hosts exactly one Room.
	MatchNameBlockTower = "blocktower_match"

	// MatchLabelKeyRoom is the label field clients filter matches by.
	MatchLabelKeyRoom = "room"
	// MatchLabelKeyPhase mirrors the room's domain.Phase for lobby filtering.
	MatchLabelKeyPhase = "phase"
)

// OpCodeFrame is the single Nakama opcode carrying the JSON wire envelope
// in both directions (JSON frames over a full-duplex
// connection"). Nakama's transport is opcode+bytes, not itself JSON-aware,
// so the JSON frame lives entirely inside the byte payload.
const OpCodeFrame int64 = 1
