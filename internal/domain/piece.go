package domain

// Kind identifies a tetromino, or the indestructible penalty tag.
type Kind byte

const (
	Empty Kind = iota
	I
	O
	T
	S
	Z
	J
	L
	X // penalty cell, never a spawnable kind
)

// Kinds is the seven spawnable tetromino kinds, in bag order.
var Kinds = [7]Kind{I, O, T, S, Z, J, L}

// String renders a kind as its single wire-protocol character. Empty is "0".
func (k Kind) String() string {
	switch k {
	case Empty:
		return "0"
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	case X:
		return "X"
	default:
		return "0"
	}
}

// spawnShapes holds each kind's shape matrix at rotation 0, rows top-down.
var spawnShapes = map[Kind][][]bool{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

// SpawnX and SpawnY are the fixed spawn coordinates for every kind.
const (
	SpawnX = 3
	SpawnY = 0
)

// Piece is a tetromino instance: its kind, its current shape grid, and its
// top-left position on a board. Shape is mutated only by Rotate; position is
// mutated only by the room applying a move.
type Piece struct {
	Kind  Kind
	Shape [][]bool
	X, Y  int
}

// NewPiece spawns a piece of the given kind at the fixed spawn position.
func NewPiece(kind Kind) *Piece {
	src := spawnShapes[kind]
	shape := make([][]bool, len(src))
	for i, row := range src {
		shape[i] = append([]bool(nil), row...)
	}
	return &Piece{Kind: kind, Shape: shape, X: SpawnX, Y: SpawnY}
}

// Clone returns a deep copy so callers can probe a hypothetical move or
// rotation without mutating the live piece.
func (p *Piece) Clone() *Piece {
	shape := make([][]bool, len(p.Shape))
	for i, row := range p.Shape {
		shape[i] = append([]bool(nil), row...)
	}
	return &Piece{Kind: p.Kind, Shape: shape, X: p.X, Y: p.Y}
}

// Rotated returns a new shape grid rotated 90° clockwise. O is a fixed point.
// Every shape grid is square (I 4x4, O 2x2, the rest 3x3), so a plain
// transpose-then-reverse-rows suffices.
func Rotated(shape [][]bool) [][]bool {
	n := len(shape)
	out := make([][]bool, n)
	for r := 0; r < n; r++ {
		out[r] = make([]bool, n)
		for c := 0; c < n; c++ {
			out[r][c] = shape[n-1-c][r]
		}
	}
	return out
}

// cells iterates the filled (row, col) offsets of a shape grid.
func cells(shape [][]bool) [][2]int {
	var out [][2]int
	for r, row := range shape {
		for c, filled := range row {
			if filled {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}
