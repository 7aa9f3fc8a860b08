package strategy

import (
	"math"

	"github.com/tictacmatch/tictacmatch-go/internal/game"
)

// Minimax plays perfectly using exhaustive search with alpha-beta
// pruning. It never loses from any reachable position.
type Minimax struct{}

// NewMinimax creates a Minimax strategy.
func NewMinimax() *Minimax {
	return &Minimax{}
}

// Ensure Minimax implements Strategy
var _ Strategy = (*Minimax)(nil)

// ChooseCell returns the highest-scoring cell for self.
func (m *Minimax) ChooseCell(b game.Board, self game.Mark) game.Cell {
	bestVal := math.Inf(-1)
	moves := b.LegalMoves()
	best := moves[0]

	for _, c := range moves {
		b[c.Row][c.Col] = self
		val := minimax(b, self, false, math.Inf(-1), math.Inf(1))
		b[c.Row][c.Col] = game.Empty
		if val > bestVal {
			bestVal = val
			best = c
		}
	}
	return best
}

// minimax scores the board from self's perspective: +10 for a self win,
// -10 for an opponent win, 0 for a draw.
func minimax(b game.Board, self game.Mark, maximizing bool, alpha, beta float64) float64 {
	if b.HasWon(self) {
		return 10
	}
	if b.HasWon(self.Other()) {
		return -10
	}
	if b.Full() {
		return 0
	}

	if maximizing {
		best := math.Inf(-1)
		for _, c := range b.LegalMoves() {
			b[c.Row][c.Col] = self
			best = math.Max(best, minimax(b, self, false, alpha, beta))
			b[c.Row][c.Col] = game.Empty
			alpha = math.Max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, c := range b.LegalMoves() {
		b[c.Row][c.Col] = self.Other()
		best = math.Min(best, minimax(b, self, true, alpha, beta))
		b[c.Row][c.Col] = game.Empty
		beta = math.Min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
