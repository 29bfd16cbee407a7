package bot

import (
	"github.com/mcoot/othello/internal/dependencies/random"
	"github.com/mcoot/othello/internal/model"
)

// RandomStrategy picks uniformly among the legal moves
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove returns a uniformly random legal move
func (s *RandomStrategy) ChooseMove(legal []model.Position) (model.Position, error) {
	if len(legal) == 0 {
		return model.InvalidPosition, model.ErrNoLegalMoves
	}
	return legal[s.random.Intn(len(legal))], nil
}

// FirstStrategy always plays the first legal move in row-major order
type FirstStrategy struct{}

// ChooseMove returns legal[0]
func (FirstStrategy) ChooseMove(legal []model.Position) (model.Position, error) {
	if len(legal) == 0 {
		return model.InvalidPosition, model.ErrNoLegalMoves
	}
	return legal[0], nil
}

// DefaultStrategies returns the built-in strategies keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyRandom: NewRandomStrategy(rnd),
		model.BotStrategyFirst:  FirstStrategy{},
	}
}
