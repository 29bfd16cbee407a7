package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/game"
)

// MaxBotIterations is a safety limit for the ProcessBotTurns loop.
// It is larger than the number of cells on the biggest board.
const MaxBotIterations = 1000

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionMove         BotActionType = "move"
	ActionPass         BotActionType = "pass"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken during ProcessBotTurns
type BotAction struct {
	Type     BotActionType
	Player   model.CellState
	Position model.Position
	// Result is the move that produced this action
	Result *game.MoveResult
}

// Service plays the bot seats of games
type Service struct {
	gameController *game.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController *game.Controller,
	strategies map[string]Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the names of the registered strategies
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	return names
}

// ProviderFor resolves the move provider for a seat
func (s *Service) ProviderFor(seat model.Seat) (Provider, error) {
	if !seat.IsBot() {
		return HumanInput{}, nil
	}
	st, ok := s.strategies[seat.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, seat.Strategy)
	}
	return StrategyProvider{Strategy: st}, nil
}

// ProcessBotTurns plays moves for as long as a bot seat is to move.
// It stops at a human seat or a finished game and returns every action
// taken so handlers can broadcast updates.
func (s *Service) ProcessBotTurns(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	var actions []BotAction

	for range MaxBotIterations {
		if err := ctx.Err(); err != nil {
			return actions, err
		}

		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		// Stop if game is finished
		if g.IsOver() {
			break
		}

		player := g.CurrentPlayer()
		provider, err := s.ProviderFor(*g.Seat(player))
		if err != nil {
			return actions, err
		}

		pos, ok, err := provider.NextMove(game.LegalMovesOf(g))
		if err != nil {
			return actions, err
		}
		if !ok {
			break // Human's turn
		}

		result, err := s.gameController.PlayBotMove(ctx, gameID, player, pos)
		if err != nil {
			return actions, err
		}

		s.logger.Debug("bot moved",
			slog.String("game_id", string(gameID)),
			slog.String("player", player.String()),
			slog.String("position", pos.String()),
		)

		actions = append(actions, BotAction{
			Type:     ActionMove,
			Player:   player,
			Position: pos,
			Result:   result,
		})
		if result.Passed != model.Empty {
			actions = append(actions, BotAction{Type: ActionPass, Player: result.Passed, Result: result})
		}
		if result.Summary != nil {
			actions = append(actions, BotAction{Type: ActionGameComplete, Result: result})
			break
		}
	}

	return actions, nil
}
