package strategy

import (
	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/random"
	"github.com/tictacmatch/tictacmatch-go/internal/game"
)

// Heuristic plays an immediate winning move if one exists, otherwise
// blocks the opponent's winning move, otherwise moves at random. With
// probability 1-competence it ignores the heuristic and moves at random
// anyway, so the competence coefficient directly controls strength.
type Heuristic struct {
	competence float64
	random     random.Random
}

// NewHeuristic creates a Heuristic with the given competence in [0, 1].
func NewHeuristic(competence float64, rnd random.Random) *Heuristic {
	return &Heuristic{competence: competence, random: rnd}
}

// Ensure Heuristic implements Strategy
var _ Strategy = (*Heuristic)(nil)

// ChooseCell picks the next cell for self.
func (h *Heuristic) ChooseCell(b game.Board, self game.Mark) game.Cell {
	move := winningCell(b, self)
	if move == nil {
		move = winningCell(b, self.Other())
	}
	if move == nil || h.random.Float64() > h.competence {
		return randomCell(b, h.random)
	}
	return *move
}

// winningCell returns a cell that completes a line for the mark, or nil.
func winningCell(b game.Board, m game.Mark) *game.Cell {
	for _, c := range b.LegalMoves() {
		b[c.Row][c.Col] = m
		if b.HasWon(m) {
			return &game.Cell{Row: c.Row, Col: c.Col}
		}
		b[c.Row][c.Col] = game.Empty
	}
	return nil
}

func randomCell(b game.Board, rnd random.Random) game.Cell {
	moves := b.LegalMoves()
	return moves[rnd.Intn(len(moves))]
}
