package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRejectsOutOfBounds(t *testing.T) {
	board := NewBoard()
	piece := NewPiece(O)

	assert.True(t, IsValid(board, piece, 0, 0))
	assert.False(t, IsValid(board, piece, -1, 0))
	assert.False(t, IsValid(board, piece, BoardCols-1, 0))
	assert.False(t, IsValid(board, piece, 0, BoardRows-1))
}

func TestIsValidRejectsOccupiedCell(t *testing.T) {
	board := NewBoard()
	board[5][5] = I
	piece := NewPiece(O)

	assert.False(t, IsValid(board, piece, 4, 4))
	assert.True(t, IsValid(board, piece, 6, 4))
}

func TestLockBurnsPieceIntoBoard(t *testing.T) {
	board := NewBoard()
	piece := NewPiece(O)
	piece.X, piece.Y = 3, 18

	board = Lock(board, piece)
	assert.Equal(t, O, board[18][3])
	assert.Equal(t, O, board[18][4])
	assert.Equal(t, O, board[19][3])
	assert.Equal(t, O, board[19][4])
}

func TestClearLinesRemovesFullRowsAndCollapses(t *testing.T) {
	board := NewBoard()
	for c := 0; c < BoardCols; c++ {
		board[BoardRows-1][c] = I
	}
	board[BoardRows-2][0] = T

	newBoard, cleared := ClearLines(board)
	require.Equal(t, 1, cleared)
	assert.Equal(t, T, newBoard[BoardRows-1][0])
	assert.Equal(t, Empty, newBoard[BoardRows-1][1])
	assert.Equal(t, Empty, newBoard[0][0])
}

func TestClearLinesNoFullRowsIsNoop(t *testing.T) {
	board := NewBoard()
	board[10][3] = L
	newBoard, cleared := ClearLines(board)
	assert.Zero(t, cleared)
	assert.Equal(t, board, newBoard)
}

func TestPenaltyRowNeverClears(t *testing.T) {
	board := InjectPenalty(NewBoard(), 1)
	_, cleared := ClearLines(board)
	assert.Zero(t, cleared, "a penalty row must never satisfy the full-row clear rule")
	assert.Equal(t, Empty, board[BoardRows-1][PenaltyGapCol])
}

func TestInjectPenaltyPushesRowsUpAndDiscardsOverflow(t *testing.T) {
	board := NewBoard()
	board[0][2] = T // would be pushed off the top

	board = InjectPenalty(board, 1)
	assert.Equal(t, Empty, board[0][2], "top row content is discarded once pushed past the top")
	for c := 0; c < BoardCols; c++ {
		if c == PenaltyGapCol {
			assert.Equal(t, Empty, board[BoardRows-1][c])
		} else {
			assert.Equal(t, X, board[BoardRows-1][c])
		}
	}
}

func TestInjectPenaltyClampsAtBoardHeight(t *testing.T) {
	board := InjectPenalty(NewBoard(), BoardRows+5)
	for r := 0; r < BoardRows; r++ {
		for c := 0; c < BoardCols; c++ {
			if c == PenaltyGapCol {
				assert.Equal(t, Empty, board[r][c])
			} else {
				assert.Equal(t, X, board[r][c])
			}
		}
	}
}

func TestSpectrumReflectsColumnHeights(t *testing.T) {
	board := NewBoard()
	board[BoardRows-1][0] = I  // height 1
	board[BoardRows-5][1] = I  // height 5

	spectrum := Spectrum(board)
	assert.Equal(t, 1, spectrum[0])
	assert.Equal(t, 5, spectrum[1])
	assert.Equal(t, 0, spectrum[2])
}
