package domain

const (
	BoardRows = 20
	BoardCols = 10
)

// PenaltyGapCol is the fixed empty column in every injected penalty row so
// that a penalty row can never satisfy the full-row clear condition on its
// own. See DESIGN.md Open Question (c) for the reasoning.
const PenaltyGapCol = 0

// Board is a fixed 20x10 grid of cell tags. Row 0 is the top.
type Board [BoardRows][BoardCols]Kind

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// IsValid reports whether piece can occupy the board at (x, y): every filled
// cell must be in-bounds and land on an empty board cell.
func IsValid(board Board, piece *Piece, x, y int) bool {
	for _, rc := range cells(piece.Shape) {
		row, col := rc[0], rc[1]
		bx, by := x+col, y+row
		if bx < 0 || bx >= BoardCols || by < 0 || by >= BoardRows {
			return false
		}
		if board[by][bx] != Empty {
			return false
		}
	}
	return true
}

// Lock burns piece into board at its current position, returning the new
// board. Cells above the board (by < 0) are ignored, matching a piece that
// is still partially above the visible playfield at lock time.
func Lock(board Board, piece *Piece) Board {
	out := board
	for _, rc := range cells(piece.Shape) {
		row, col := rc[0], rc[1]
		bx, by := piece.X+col, piece.Y+row
		if by < 0 || by >= BoardRows || bx < 0 || bx >= BoardCols {
			continue
		}
		out[by][bx] = piece.Kind
	}
	return out
}

// ClearLines removes every full row (all cells non-empty), collapses the
// board downward, and prepends empty rows at the top to preserve height.
// Because every penalty row carries an empty cell at PenaltyGapCol, a
// penalty row is never "full" on its own; it clears only once a locked
// piece fills its gap cell, and otherwise leaves the board only by being
// pushed off the top by further injections.
func ClearLines(board Board) (Board, int) {
	kept := make([][BoardCols]Kind, 0, BoardRows)
	cleared := 0
	for r := 0; r < BoardRows; r++ {
		if rowFull(board[r]) {
			cleared++
			continue
		}
		kept = append(kept, board[r])
	}
	if cleared == 0 {
		return board, 0
	}
	var out Board
	offset := BoardRows - len(kept)
	for i, row := range kept {
		out[offset+i] = row
	}
	return out, cleared
}

func rowFull(row [BoardCols]Kind) bool {
	for _, cell := range row {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Spectrum returns, for each column, 20 minus the row index of the topmost
// occupied cell, or 0 if the column is empty.
func Spectrum(board Board) [BoardCols]int {
	var out [BoardCols]int
	for c := 0; c < BoardCols; c++ {
		top := -1
		for r := 0; r < BoardRows; r++ {
			if board[r][c] != Empty {
				top = r
				break
			}
		}
		if top < 0 {
			out[c] = 0
		} else {
			out[c] = BoardRows - top
		}
	}
	return out
}

// PenaltyRow builds one indestructible row: every column filled with X
// except PenaltyGapCol, which is left empty.
func PenaltyRow() [BoardCols]Kind {
	var row [BoardCols]Kind
	for c := 0; c < BoardCols; c++ {
		if c == PenaltyGapCol {
			row[c] = Empty
		} else {
			row[c] = X
		}
	}
	return row
}

// InjectPenalty pushes n penalty rows onto the bottom of board, discarding
// rows pushed off the top. n <= 0 is a no-op.
func InjectPenalty(board Board, n int) Board {
	if n <= 0 {
		return board
	}
	if n >= BoardRows {
		var out Board
		for r := 0; r < BoardRows; r++ {
			out[r] = PenaltyRow()
		}
		return out
	}
	var out Board
	for r := 0; r < BoardRows-n; r++ {
		out[r] = board[r+n]
	}
	penalty := PenaltyRow()
	for r := BoardRows - n; r < BoardRows; r++ {
		out[r] = penalty
	}
	return out
}

// Cells returns the board serialized as wire tags ("0" for empty, else the
// kind's letter), row-major.
func (b Board) Cells() [BoardRows][BoardCols]string {
	var out [BoardRows][BoardCols]string
	for r := 0; r < BoardRows; r++ {
		for c := 0; c < BoardCols; c++ {
			out[r][c] = b[r][c].String()
		}
	}
	return out
}
