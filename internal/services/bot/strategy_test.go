package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/othello/internal/dependencies/mocks"
	"github.com/mcoot/othello/internal/dependencies/random"
	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/bot"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *bot.RandomStrategy
	moves      []model.Position
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = bot.NewRandomStrategy(s.mockRandom)
	s.moves = []model.Position{
		{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4},
	}
}

func (s *StrategySuite) TestChooseMoveUsesRandomIndex() {
	s.mockRandom.QueueIntn(2)
	pos, err := s.strategy.ChooseMove(s.moves)
	s.Require().NoError(err)
	s.Equal(model.Position{Row: 4, Col: 5}, pos)

	s.mockRandom.QueueIntn(0)
	pos, err = s.strategy.ChooseMove(s.moves)
	s.Require().NoError(err)
	s.Equal(model.Position{Row: 2, Col: 3}, pos)
}

func (s *StrategySuite) TestChooseMoveSingleElement() {
	only := []model.Position{{Row: 7, Col: 7}}
	r := bot.NewRandomStrategy(random.New())
	for range 20 {
		pos, err := r.ChooseMove(only)
		s.Require().NoError(err)
		s.Equal(only[0], pos)
	}
}

func (s *StrategySuite) TestChooseMoveReproducibleWithSeed() {
	a := bot.NewRandomStrategy(random.NewSeeded(1234))
	b := bot.NewRandomStrategy(random.NewSeeded(1234))
	for range 30 {
		pa, err := a.ChooseMove(s.moves)
		s.Require().NoError(err)
		pb, err := b.ChooseMove(s.moves)
		s.Require().NoError(err)
		s.Equal(pa, pb)
		s.Contains(s.moves, pa)
	}
}

func (s *StrategySuite) TestChooseMoveEmptySet() {
	_, err := s.strategy.ChooseMove(nil)
	s.ErrorIs(err, model.ErrNoLegalMoves)

	_, err = bot.FirstStrategy{}.ChooseMove(nil)
	s.ErrorIs(err, model.ErrNoLegalMoves)
}

func (s *StrategySuite) TestFirstStrategy() {
	pos, err := bot.FirstStrategy{}.ChooseMove(s.moves)
	s.Require().NoError(err)
	s.Equal(s.moves[0], pos)
}

func (s *StrategySuite) TestProviders() {
	_, ok, err := bot.HumanInput{}.NextMove(s.moves)
	s.Require().NoError(err)
	s.False(ok)

	s.mockRandom.QueueIntn(3)
	pos, ok, err := bot.StrategyProvider{Strategy: s.strategy}.NextMove(s.moves)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(s.moves[3], pos)

	_, ok, err = bot.StrategyProvider{Strategy: s.strategy}.NextMove(nil)
	s.ErrorIs(err, model.ErrNoLegalMoves)
	s.False(ok)
}
