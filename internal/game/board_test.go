package game

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) TestNewBoardIsEmpty() {
	b := NewBoard()
	s.Len(b.LegalMoves(), 9)
	s.False(b.HasWon(X))
	s.False(b.HasWon(O))
	s.False(b.IsDraw())
}

func (s *BoardSuite) TestLegalRejectsOutOfRange() {
	b := NewBoard()
	s.False(b.Legal(Cell{Row: -1, Col: 0}))
	s.False(b.Legal(Cell{Row: 3, Col: 0}))
	s.False(b.Legal(Cell{Row: 0, Col: 3}))
	s.True(b.Legal(Cell{Row: 2, Col: 2}))
}

func (s *BoardSuite) TestLegalRejectsClaimedCell() {
	b := NewBoard()
	b[1][1] = X
	s.False(b.Legal(Cell{Row: 1, Col: 1}))
}

func (s *BoardSuite) TestRowWin() {
	b := NewBoard()
	b[0][0], b[0][1], b[0][2] = X, X, X
	s.True(b.HasWon(X))
	s.False(b.HasWon(O))
}

func (s *BoardSuite) TestColumnWin() {
	b := NewBoard()
	b[0][2], b[1][2], b[2][2] = O, O, O
	s.True(b.HasWon(O))
}

func (s *BoardSuite) TestDiagonalWin() {
	b := NewBoard()
	b[0][2], b[1][1], b[2][0] = X, X, X
	s.True(b.HasWon(X))
}

func (s *BoardSuite) TestDraw() {
	b := Board{
		{X, O, X},
		{X, O, O},
		{O, X, X},
	}
	s.True(b.Full())
	s.True(b.IsDraw())
	s.False(b.HasWon(X))
	s.False(b.HasWon(O))
}

func (s *BoardSuite) TestFullBoardWithWinnerIsNotDraw() {
	b := Board{
		{X, X, X},
		{O, O, X},
		{X, O, O},
	}
	s.True(b.Full())
	s.False(b.IsDraw())
}

func (s *BoardSuite) TestMarkOther() {
	s.Equal(O, X.Other())
	s.Equal(X, O.Other())
}
