package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPieceBagIsDeterministicForSameSeed(t *testing.T) {
	a := NewPieceBag(42)
	b := NewPieceBag(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.At(i), b.At(i), "index %d", i)
	}
}

func TestPieceBagDiffersAcrossSeeds(t *testing.T) {
	a := NewPieceBag(1)
	b := NewPieceBag(2)
	diff := false
	for i := 0; i < 20; i++ {
		if a.At(i) != b.At(i) {
			diff = true
			break
		}
	}
	assert.True(t, diff, "different seeds should diverge within the first 20 draws")
}

func TestPieceBagEachBagIsAPermutation(t *testing.T) {
	bag := NewPieceBag(7)
	for bagIndex := 0; bagIndex < 5; bagIndex++ {
		seen := make(map[Kind]int)
		for slot := 0; slot < len(Kinds); slot++ {
			seen[bag.At(bagIndex*len(Kinds)+slot)]++
		}
		for _, k := range Kinds {
			assert.Equal(t, 1, seen[k], "kind %v should appear exactly once in bag %d", k, bagIndex)
		}
	}
}

func TestPieceBagAccessOrderIndependent(t *testing.T) {
	forward := NewPieceBag(99)
	backward := NewPieceBag(99)

	var forwardSeq [30]Kind
	for i := 0; i < 30; i++ {
		forwardSeq[i] = forward.At(i)
	}
	var backwardSeq [30]Kind
	for i := 29; i >= 0; i-- {
		backwardSeq[i] = backward.At(i)
	}
	assert.Equal(t, forwardSeq, backwardSeq)
}
