package testutil

import (
	"time"

	"github.com/mcoot/othello/internal/model"
)

// FixedTime is a stable timestamp for fixtures
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewGame returns a fresh 8x8 game, human Black against a random bot White, with the given ID
func NewGame(id model.GameID) *model.Game {
	board, err := model.NewBoard(model.DefaultBoardSize, model.DefaultBoardSize, model.RulesCardinal)
	if err != nil {
		panic(err)
	}
	return &model.Game{
		ID:        id,
		State:     model.GameStateBlackTurn,
		Board:     board,
		Black:     model.Seat{Kind: model.SeatHuman},
		White:     model.Seat{Kind: model.SeatBot, Strategy: model.BotStrategyRandom},
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}
