package factory

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/othello/internal/config"
	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/bot"
	"github.com/mcoot/othello/internal/services/game"
	"github.com/mcoot/othello/internal/storage/memory"
	redisstorage "github.com/mcoot/othello/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) createHumanVsBot() (*model.Game, game.SeatTokens) {
	g, tokens, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		Black: game.SeatSpec{Kind: model.SeatHuman},
		White: game.SeatSpec{Kind: model.SeatBot, Strategy: model.BotStrategyRandom},
	})
	s.Require().NoError(err)
	return g, tokens
}

func (s *IntegrationSuite) playHuman(id model.GameID, token string, pos model.Position) {
	_, err := s.app.GameController.PlayMove(s.ctx, id, model.Black, token, pos)
	s.Require().NoError(err)
}

func (s *IntegrationSuite) botReply(id model.GameID) []bot.BotAction {
	actions, err := s.app.BotService.ProcessBotTurns(s.ctx, id)
	s.Require().NoError(err)
	return actions
}

// Test: opening phase and first regular move against the random bot
func (s *IntegrationSuite) TestHumanAgainstRandomBot() {
	g, tokens := s.createHumanVsBot()
	s.NotEmpty(tokens.Black)
	s.Empty(tokens.White)

	// Black is human, so nothing happens before the first move
	s.Empty(s.botReply(g.ID))

	// Opening: the bot takes the first free centre cell each time
	s.playHuman(g.ID, tokens.Black, model.Position{Row: 3, Col: 4})
	actions := s.botReply(g.ID)
	s.Require().Len(actions, 1)
	s.Equal(model.Position{Row: 3, Col: 3}, actions[0].Position)

	s.playHuman(g.ID, tokens.Black, model.Position{Row: 4, Col: 3})
	actions = s.botReply(g.ID)
	s.Require().Len(actions, 1)
	s.Equal(model.Position{Row: 4, Col: 4}, actions[0].Position)

	legal, err := s.app.GameController.LegalMoves(s.ctx, g.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]model.Position{
		{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4},
	}, legal)

	// Black d3 flips the white disc below it; White's options are then c5 and e3
	s.playHuman(g.ID, tokens.Black, model.Position{Row: 2, Col: 3})
	s.app.MockRandom.QueueIntn(1)
	actions = s.botReply(g.ID)
	s.Require().Len(actions, 1)
	s.Equal(bot.ActionMove, actions[0].Type)
	s.Equal(model.White, actions[0].Player)
	s.Equal(model.Position{Row: 4, Col: 2}, actions[0].Position)
	s.Equal([]model.Position{{Row: 4, Col: 3}}, actions[0].Result.Move.Flipped)

	stored, err := s.app.Storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateBlackTurn, stored.State)
	s.Len(stored.Moves, 6)
	s.Equal(6, stored.Board.MoveCount())
}

// Test: a bot-vs-bot game runs to completion and is archived
func (s *IntegrationSuite) TestBotGameIsArchived() {
	g, tokens, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		Width:  4,
		Height: 4,
		Rules:  model.RulesCompass,
		Black:  game.SeatSpec{Kind: model.SeatBot, Strategy: model.BotStrategyFirst},
		White:  game.SeatSpec{Kind: model.SeatBot, Strategy: model.BotStrategyRandom},
	})
	s.Require().NoError(err)
	s.Empty(tokens.Black)
	s.Empty(tokens.White)

	actions := s.botReply(g.ID)
	s.Require().NotEmpty(actions)
	s.Equal(bot.ActionGameComplete, actions[len(actions)-1].Type)

	final, err := s.app.GameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(final.IsOver())

	summaries, err := s.app.GameController.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(g.ID, summaries[0].GameID)
	s.Equal(final.Outcome(), summaries[0].Outcome)
	s.Equal(len(final.Moves), summaries[0].MoveCount)
}

// Test: restarting keeps the seats and clears the board
func (s *IntegrationSuite) TestRestartKeepsSeats() {
	g, tokens := s.createHumanVsBot()
	s.playHuman(g.ID, tokens.Black, model.Position{Row: 3, Col: 4})
	s.botReply(g.ID)

	restarted, err := s.app.GameController.RestartGame(s.ctx, g.ID, tokens.Black)
	s.Require().NoError(err)
	s.Equal(model.GameStateBlackTurn, restarted.State)
	s.Empty(restarted.Moves)
	s.Equal(0, restarted.Board.MoveCount())
	s.Equal(model.SeatBot, restarted.White.Kind)

	// The original token still owns the Black seat
	s.playHuman(g.ID, tokens.Black, model.Position{Row: 3, Col: 3})
}

func TestNewStorageSelection(t *testing.T) {
	s := suite.Suite{}
	s.SetT(t)

	app, err := New(Config{})
	s.Require().NoError(err)
	s.IsType(&memory.Storage{}, app.Storage)
	s.NoError(app.Close())

	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()
	app, err = New(Config{StorageType: config.StorageTypeRedis, RedisConfig: &redisCfg})
	s.Require().NoError(err)
	s.IsType(&redisstorage.Storage{}, app.Storage)
	s.NoError(app.Close())

	_, err = New(Config{StorageType: config.StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: config.StorageTypePostgres})
	s.Error(err)

	_, err = New(Config{StorageType: "sqlite"})
	s.Error(err)
}

func TestFromServerConfig(t *testing.T) {
	s := suite.Suite{}
	s.SetT(t)

	seed := uint64(7)
	cfg := FromServerConfig(&config.ServerConfig{
		StorageType: config.StorageTypeRedis,
		RedisURL:    "redis://localhost:6379/1",
		Rules:       model.RulesCompass,
		BoardSize:   6,
		RandomSeed:  &seed,
		TokenCost:   5,
	}, nil)

	s.Require().NotNil(cfg.RedisConfig)
	s.Equal("redis://localhost:6379/1", cfg.RedisConfig.URL)
	s.Equal(game.Config{BoardWidth: 6, BoardHeight: 6, Rules: model.RulesCompass}, cfg.GameConfig)
	s.Equal(5, cfg.AuthConfig.Cost)
	s.Equal(&seed, cfg.RandomSeed)
}
