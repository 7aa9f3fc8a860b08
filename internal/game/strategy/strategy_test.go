package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/mocks"
	"github.com/tictacmatch/tictacmatch-go/internal/game"
)

type StrategySuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

func (s *StrategySuite) TestHeuristicTakesWinningMove() {
	b := game.NewBoard()
	b[0][0], b[0][1] = game.O, game.O
	b[1][0], b[1][1] = game.X, game.X

	// Float64 below competence keeps the heuristic move
	s.random.QueueFloat64(0.0)

	h := NewHeuristic(1.0, s.random)
	s.Equal(game.Cell{Row: 0, Col: 2}, h.ChooseCell(b, game.O))
}

func (s *StrategySuite) TestHeuristicBlocksOpponentWin() {
	b := game.NewBoard()
	b[1][0], b[1][1] = game.X, game.X
	b[0][0] = game.O

	s.random.QueueFloat64(0.0)

	h := NewHeuristic(1.0, s.random)
	s.Equal(game.Cell{Row: 1, Col: 2}, h.ChooseCell(b, game.O))
}

func (s *StrategySuite) TestHeuristicPrefersOwnWinOverBlock() {
	b := game.NewBoard()
	// O can win at (0,2); X threatens at (1,2)
	b[0][0], b[0][1] = game.O, game.O
	b[1][0], b[1][1] = game.X, game.X

	s.random.QueueFloat64(0.0)

	h := NewHeuristic(1.0, s.random)
	s.Equal(game.Cell{Row: 0, Col: 2}, h.ChooseCell(b, game.O))
}

func (s *StrategySuite) TestHeuristicFallsBackToRandomAtLowCompetence() {
	b := game.NewBoard()
	b[0][0], b[0][1] = game.O, game.O

	// Float64 above competence forces a random move; Intn picks the
	// first legal cell
	s.random.QueueFloat64(0.99)
	s.random.QueueIntn(0)

	h := NewHeuristic(0.3, s.random)
	got := h.ChooseCell(b, game.O)
	s.True(b.Legal(got))
}

func (s *StrategySuite) TestMinimaxTakesImmediateWin() {
	b := game.NewBoard()
	b[0][0], b[0][1] = game.X, game.X
	b[1][0], b[1][1] = game.O, game.O

	m := NewMinimax()
	s.Equal(game.Cell{Row: 0, Col: 2}, m.ChooseCell(b, game.X))
}

func (s *StrategySuite) TestMinimaxBlocksLoss() {
	b := game.NewBoard()
	b[0][0], b[0][1] = game.X, game.X
	b[1][1] = game.O

	m := NewMinimax()
	s.Equal(game.Cell{Row: 0, Col: 2}, m.ChooseCell(b, game.O))
}

func (s *StrategySuite) TestMinimaxNeverLosesToItself() {
	b := game.NewBoard()
	m := NewMinimax()

	mark := game.X
	for !b.Full() && !b.HasWon(game.X) && !b.HasWon(game.O) {
		c := m.ChooseCell(b, mark)
		s.Require().True(b.Legal(c))
		b[c.Row][c.Col] = mark
		mark = mark.Other()
	}

	// Perfect self-play is always a draw
	s.True(b.IsDraw())
}
