package nakama

import (
	"encoding/json"
	"testing"

	"blocktower/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrameParsesEventAndData(t *testing.T) {
	raw := []byte(`{"event":"movePiece","data":{"direction":"left"}}`)
	frame, err := decodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, "movePiece", frame.Event)

	var d MovePieceData
	require.NoError(t, json.Unmarshal(frame.Data, &d))
	assert.Equal(t, domain.Left, d.Direction)
}

func TestDecodeFrameRejectsMissingEvent(t *testing.T) {
	_, err := decodeFrame([]byte(`{"data":{}}`))
	assert.Error(t, err)
}

func TestDecodeFrameRejectsMalformedJSON(t *testing.T) {
	_, err := decodeFrame([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeFrameRoundTrips(t *testing.T) {
	bytes, err := encodeFrame("playerJoined", domain.PlayerJoinedData{Players: nil})
	require.NoError(t, err)

	var frame ClientFrame
	require.NoError(t, json.Unmarshal(bytes, &frame))
	assert.Equal(t, "playerJoined", frame.Event)
}

func TestParseGameActionTranslatesMove(t *testing.T) {
	raw := json.RawMessage(`{"type":"move","direction":"right"}`)
	event, data, err := parseGameAction(raw)
	require.NoError(t, err)
	assert.Equal(t, "movePiece", event)
	assert.Equal(t, domain.Right, data.Direction)
}

func TestParseGameActionTranslatesRotateAndHardDrop(t *testing.T) {
	event, _, err := parseGameAction(json.RawMessage(`{"type":"rotate"}`))
	require.NoError(t, err)
	assert.Equal(t, "rotatePiece", event)

	event, _, err = parseGameAction(json.RawMessage(`{"type":"hardDrop"}`))
	require.NoError(t, err)
	assert.Equal(t, "hardDrop", event)
}

func TestParseGameActionRejectsUnknownType(t *testing.T) {
	_, _, err := parseGameAction(json.RawMessage(`{"type":"teleport"}`))
	assert.Error(t, err)
}
