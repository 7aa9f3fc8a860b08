// Package strategy provides move selection for computer opponents.
package strategy

import "github.com/tictacmatch/tictacmatch-go/internal/game"

// Strategy chooses the next cell for the given mark. The board is
// guaranteed to have at least one legal move.
type Strategy interface {
	ChooseCell(b game.Board, self game.Mark) game.Cell
}
