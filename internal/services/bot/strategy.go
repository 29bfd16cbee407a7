package bot

import "github.com/mcoot/othello/internal/model"

// Strategy chooses one move out of a set of legal moves
type Strategy interface {
	// ChooseMove selects a move from legal, which is in row-major order.
	// It returns model.ErrNoLegalMoves when legal is empty.
	ChooseMove(legal []model.Position) (model.Position, error)
}

// Provider supplies the next move for one seat of a game.
// A provider that cannot decide on its own (a human seat) reports ok=false
// and the move has to arrive as external input.
type Provider interface {
	NextMove(legal []model.Position) (pos model.Position, ok bool, err error)
}

// HumanInput is the provider for human seats; it never produces a move
type HumanInput struct{}

// NextMove always defers to external input
func (HumanInput) NextMove(legal []model.Position) (model.Position, bool, error) {
	return model.InvalidPosition, false, nil
}

// StrategyProvider adapts a Strategy into a Provider
type StrategyProvider struct {
	Strategy Strategy
}

// NextMove asks the strategy for a move
func (p StrategyProvider) NextMove(legal []model.Position) (model.Position, bool, error) {
	pos, err := p.Strategy.ChooseMove(legal)
	if err != nil {
		return model.InvalidPosition, false, err
	}
	return pos, true, nil
}

var (
	_ Provider = HumanInput{}
	_ Provider = StrategyProvider{}
)
