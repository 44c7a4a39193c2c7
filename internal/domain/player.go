package domain

// Player holds per-player authoritative state within a Room.
type Player struct {
	ID           string // connection id
	Name         string
	Host         bool
	Alive        bool
	Score        int
	LinesCleared int

	Board   Board
	Current *Piece
	Next    *Piece
	Cursor  int // index into the room's bag; equals pieces consumed
}

// NewPlayer creates a fresh, pre-game player entry. Host is assigned by the
// caller (the registry: the first joiner becomes host).
func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Board: NewBoard()}
}

// Spectrum derives the player's column-height profile from their board.
func (p *Player) Spectrum() [BoardCols]int {
	return Spectrum(p.Board)
}

// resetForStart clears per-game state and deals the first two pieces from
// bag starting at cursor 0.
func (p *Player) resetForStart(bag *PieceBag) {
	p.Board = NewBoard()
	p.Cursor = 0
	p.Current = NewPiece(bag.At(0))
	p.Next = NewPiece(bag.At(1))
	p.Alive = true
	p.Score = 0
	p.LinesCleared = 0
}

// advancePiece promotes Next to Current, draws a fresh Next, and advances
// the cursor. It does not check spawn validity; the caller (Room) does that
// immediately after to detect topout.
func (p *Player) advancePiece(bag *PieceBag) {
	p.Cursor++
	p.Current = p.Next
	p.Current.X, p.Current.Y = SpawnX, SpawnY
	p.Next = NewPiece(bag.At(p.Cursor + 1))
}
