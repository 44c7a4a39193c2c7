package domain

import "math/rand"

// PieceBag is a deterministic infinite stream of tetromino kinds shared by
// every player in one room. It hands out 7-permutation "bags" so no kind is
// starved for more than 12 draws in a row, while remaining fully
// reproducible from (seed, cursor) regardless of which player asks first.
type PieceBag struct {
	seed int64
}

// NewPieceBag returns a bag rooted at seed. Two bags built from the same
// seed produce byte-identical streams.
func NewPieceBag(seed int64) *PieceBag {
	return &PieceBag{seed: seed}
}

// At returns the kind at stream index i (0-based), independent of any
// player's consumption order.
func (b *PieceBag) At(i int) Kind {
	bagIndex := i / len(Kinds)
	slot := i % len(Kinds)
	return b.bag(bagIndex)[slot]
}

// bag deterministically shuffles a fresh copy of Kinds for bagIndex using a
// PRNG seeded from (b.seed, bagIndex).
func (b *PieceBag) bag(bagIndex int) [7]Kind {
	out := Kinds
	rng := rand.New(rand.NewSource(mixSeed(b.seed, int64(bagIndex))))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// mixSeed folds a room seed and a bag index into a single 64-bit seed. This
// is a splitmix64-style finalizer: cheap, well-distributed, and, crucially,
// a pure function of its inputs so bag N is reconstructible from scratch.
func mixSeed(seed, bagIndex int64) int64 {
	z := uint64(seed) + uint64(bagIndex)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z)
}
