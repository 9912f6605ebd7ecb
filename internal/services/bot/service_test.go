package bot

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mvidak/tictactoe-go/internal/dependencies/mocks"
	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(NewRandomStrategy(s.random), testutil.NopLogger())
}

func (s *ServiceSuite) TestSuggestMovePlacesOnEmptyCell() {
	board := model.BoardSnapshot{}.Place(model.Position{Row: 0, Col: 0}, model.SymbolX)

	// First empty position in row-major order is (0,1)
	s.random.QueueIntn(0)

	pos, next, err := s.service.SuggestMove(board, model.SymbolO)
	s.Require().NoError(err)
	s.Equal(model.Position{Row: 0, Col: 1}, pos)
	s.Equal(model.SymbolO, next.Get(pos))
	s.Equal(model.SymbolX, next.Get(model.Position{Row: 0, Col: 0}))
}

func (s *ServiceSuite) TestSuggestMoveRespectsRandomChoice() {
	var board model.BoardSnapshot
	s.random.QueueIntn(4)

	pos, _, err := s.service.SuggestMove(board, model.SymbolX)
	s.Require().NoError(err)
	s.Equal(model.Position{Row: 1, Col: 1}, pos)
}

func (s *ServiceSuite) TestSuggestMoveOnConcludedBoard() {
	board := model.BoardSnapshot{}.
		Place(model.Position{Row: 0, Col: 0}, model.SymbolX).
		Place(model.Position{Row: 0, Col: 1}, model.SymbolX).
		Place(model.Position{Row: 0, Col: 2}, model.SymbolX)

	_, _, err := s.service.SuggestMove(board, model.SymbolO)
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ServiceSuite) TestSuggestMoveRejectsMissingSymbol() {
	var board model.BoardSnapshot
	_, _, err := s.service.SuggestMove(board, model.SymbolNone)
	s.ErrorIs(err, model.ErrInvalidMove)
}
