package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPieceSpawnsAtFixedPosition(t *testing.T) {
	for _, k := range Kinds {
		p := NewPiece(k)
		assert.Equal(t, SpawnX, p.X, "kind %v", k)
		assert.Equal(t, SpawnY, p.Y, "kind %v", k)
		assert.Equal(t, k, p.Kind)
	}
}

func TestClonedPieceIsIndependent(t *testing.T) {
	p := NewPiece(T)
	c := p.Clone()
	c.Shape[0][0] = !c.Shape[0][0]
	c.X = 99

	require.NotEqual(t, p.Shape[0][0], c.Shape[0][0])
	assert.NotEqual(t, p.X, c.X)
}

func TestRotatedOIsInvariant(t *testing.T) {
	original := NewPiece(O).Shape
	rotated := Rotated(original)
	assert.Equal(t, original, rotated)
}

func TestRotatedIsFourCycle(t *testing.T) {
	for _, k := range Kinds {
		shape := NewPiece(k).Shape
		cur := shape
		for i := 0; i < 4; i++ {
			cur = Rotated(cur)
		}
		assert.Equal(t, shape, cur, "kind %v should return to itself after 4 rotations", k)
	}
}

func TestRotatedPreservesCellCount(t *testing.T) {
	for _, k := range Kinds {
		shape := NewPiece(k).Shape
		before := len(cells(shape))
		after := len(cells(Rotated(shape)))
		assert.Equal(t, before, after, "kind %v", k)
	}
}
