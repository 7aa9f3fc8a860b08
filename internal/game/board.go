// Package game holds the pure tic-tac-toe board rules: legal-move
// validation and win/draw detection. It keeps no state of its own.
package game

import "strings"

// Mark is one player's symbol on the board.
type Mark string

const (
	Empty Mark = " "
	X     Mark = "X"
	O     Mark = "O"
)

// Other returns the complementary mark.
func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// Cell addresses one board position.
type Cell struct {
	Row int
	Col int
}

// Board is a 3x3 grid of marks.
type Board [3][3]Mark

// winLines enumerates the eight three-in-a-row lines.
var winLines = [8][3]Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = Empty
		}
	}
	return b
}

// Legal reports whether the cell is on the board and unclaimed.
func (b Board) Legal(c Cell) bool {
	if c.Row < 0 || c.Row > 2 || c.Col < 0 || c.Col > 2 {
		return false
	}
	return b[c.Row][c.Col] == Empty
}

// LegalMoves returns every unclaimed cell.
func (b Board) LegalMoves() []Cell {
	var moves []Cell
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if b[r][c] == Empty {
				moves = append(moves, Cell{Row: r, Col: c})
			}
		}
	}
	return moves
}

// HasWon reports whether the mark holds a complete line.
func (b Board) HasWon(m Mark) bool {
	for _, line := range winLines {
		if b[line[0].Row][line[0].Col] == m &&
			b[line[1].Row][line[1].Col] == m &&
			b[line[2].Row][line[2].Col] == m {
			return true
		}
	}
	return false
}

// Full reports whether no cells remain.
func (b Board) Full() bool {
	return len(b.LegalMoves()) == 0
}

// IsDraw reports a full board with no winner.
func (b Board) IsDraw() bool {
	return b.Full() && !b.HasWon(X) && !b.HasWon(O)
}

// String renders the board for terminal display.
func (b Board) String() string {
	rows := make([]string, 3)
	for r := 0; r < 3; r++ {
		rows[r] = string(b[r][0]) + "|" + string(b[r][1]) + "|" + string(b[r][2])
	}
	return strings.Join(rows, "\n-+-+-\n")
}
