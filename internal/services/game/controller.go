package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/othello/internal/dependencies/clock"
	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/auth"
	"github.com/mcoot/othello/internal/storage"
)

const (
	// DefaultSummaryLimit is used when ListSummaries is called without a limit
	DefaultSummaryLimit = 20
	// MaxSummaryLimit caps how many summaries one call returns
	MaxSummaryLimit = 100
	// DefaultAbandonedRetention is how long an abandoned game stays readable
	DefaultAbandonedRetention = 24 * time.Hour
)

// Config holds the defaults applied to new games
type Config struct {
	BoardWidth  int
	BoardHeight int
	Rules       model.Rules
	// AbandonedRetention is how long after abandonment a game is purged
	AbandonedRetention time.Duration
}

// DefaultConfig returns the standard 8x8 cardinal-rules setup
func DefaultConfig() Config {
	return Config{
		BoardWidth:         model.DefaultBoardSize,
		BoardHeight:        model.DefaultBoardSize,
		Rules:              model.RulesCardinal,
		AbandonedRetention: DefaultAbandonedRetention,
	}
}

// SeatSpec describes who plays one side of a new game
type SeatSpec struct {
	Kind     model.SeatKind
	Strategy string
}

// CreateParams holds the options for a new game. Zero values take the controller defaults.
type CreateParams struct {
	Width  int
	Height int
	Rules  model.Rules
	Black  SeatSpec
	White  SeatSpec
}

// SeatTokens holds the secret tokens issued for human seats.
// A bot seat has an empty token.
type SeatTokens struct {
	Black string `json:"black,omitempty"`
	White string `json:"white,omitempty"`
}

// MoveResult describes what a single move did to a game
type MoveResult struct {
	Game *model.Game
	Move model.MoveRecord
	// Passed is the player who had to pass as a result of this move, or Empty
	Passed model.CellState
	// Summary is set when the move finished the game
	Summary *model.GameSummary
}

// Controller manages the lifecycle of Othello games
type Controller struct {
	storage    storage.Storage
	tokens     *auth.Service
	strategies []string
	cfg        Config
	clock      clock.Clock
	logger     *slog.Logger
	locks      *lockTable
	newID      func() model.GameID
}

// NewController creates a new game Controller.
// strategies lists the bot strategy names that seats may request.
func NewController(
	storage storage.Storage,
	tokens *auth.Service,
	strategies []string,
	cfg Config,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if cfg.BoardWidth == 0 {
		cfg.BoardWidth = model.DefaultBoardSize
	}
	if cfg.BoardHeight == 0 {
		cfg.BoardHeight = model.DefaultBoardSize
	}
	if cfg.Rules == "" {
		cfg.Rules = model.RulesCardinal
	}
	if cfg.AbandonedRetention <= 0 {
		cfg.AbandonedRetention = DefaultAbandonedRetention
	}
	return &Controller{
		storage:    storage,
		tokens:     tokens,
		strategies: strategies,
		cfg:        cfg,
		clock:      clock,
		logger:     logger.With(slog.String("component", "game-controller")),
		locks:      newLockTable(),
		newID:      func() model.GameID { return model.GameID(uuid.NewString()) },
	}
}

// CreateGame sets up a new game and issues tokens for its human seats
func (c *Controller) CreateGame(ctx context.Context, params CreateParams) (*model.Game, SeatTokens, error) {
	var tokens SeatTokens

	width, height, rules := params.Width, params.Height, params.Rules
	if width == 0 {
		width = c.cfg.BoardWidth
	}
	if height == 0 {
		height = c.cfg.BoardHeight
	}
	if rules == "" {
		rules = c.cfg.Rules
	}

	board, err := model.NewBoard(width, height, rules)
	if err != nil {
		return nil, tokens, err
	}

	black, blackToken, err := c.newSeat(params.Black)
	if err != nil {
		return nil, tokens, err
	}
	white, whiteToken, err := c.newSeat(params.White)
	if err != nil {
		return nil, tokens, err
	}
	tokens = SeatTokens{Black: blackToken, White: whiteToken}

	now := c.clock.Now()
	game := &model.Game{
		ID:        c.newID(),
		State:     model.GameStateBlackTurn,
		Board:     board,
		Black:     black,
		White:     white,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, SeatTokens{}, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.String("rules", string(rules)),
		slog.String("black", seatLabel(black)),
		slog.String("white", seatLabel(white)),
	)

	return game, tokens, nil
}

// newSeat validates a seat request and issues a token for human seats
func (c *Controller) newSeat(spec SeatSpec) (model.Seat, string, error) {
	switch spec.Kind {
	case model.SeatHuman, "":
		token, hash, err := c.tokens.IssueToken()
		if err != nil {
			return model.Seat{}, "", err
		}
		return model.Seat{Kind: model.SeatHuman, TokenHash: hash}, token, nil
	case model.SeatBot:
		strategy := spec.Strategy
		if strategy == "" {
			strategy = model.BotStrategyRandom
		}
		if !slices.Contains(c.strategies, strategy) {
			return model.Seat{}, "", fmt.Errorf("%w: %s", model.ErrUnknownStrategy, strategy)
		}
		return model.Seat{Kind: model.SeatBot, Strategy: strategy}, "", nil
	default:
		return model.Seat{}, "", fmt.Errorf("%w: unknown seat kind %q", model.ErrInvalidPlayer, spec.Kind)
	}
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.loadGame(ctx, gameID)
}

// loadGame fetches a game, purging it instead once it has been abandoned
// for longer than the retention window
func (c *Controller) loadGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.State != model.GameStateAbandoned || c.clock.Now().Sub(game.UpdatedAt) < c.cfg.AbandonedRetention {
		return game, nil
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return nil, fmt.Errorf("purge abandoned game %s: %w", gameID, err)
	}
	c.logger.Info("abandoned game purged", slog.String("game_id", string(gameID)))
	return nil, model.ErrGameNotFound
}

// LegalMoves returns the moves open to the player to move, in row-major order
func (c *Controller) LegalMoves(ctx context.Context, gameID model.GameID) ([]model.Position, error) {
	game, err := c.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return LegalMovesOf(game), nil
}

// LegalMovesOf returns the legal moves for whoever is to move in game.
// Finished games have none.
func LegalMovesOf(game *model.Game) []model.Position {
	player := game.CurrentPlayer()
	if player == model.Empty {
		return []model.Position{}
	}
	if game.Board.ToMove() != player {
		game.Board.UpdateLegalMoves(player)
	}
	return game.Board.CurrentLegalMoves()
}

// PlayMove plays a move for a human seat holding token
func (c *Controller) PlayMove(ctx context.Context, gameID model.GameID, player model.CellState, token string, pos model.Position) (*MoveResult, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.loadForMove(ctx, gameID, player)
	if err != nil {
		return nil, err
	}

	seat := game.Seat(player)
	if seat.IsBot() {
		return nil, model.ErrSeatIsBot
	}
	if err := c.tokens.Verify(*seat, token); err != nil {
		return nil, err
	}

	return c.applyMove(ctx, game, player, pos)
}

// PlayBotMove plays a move for a bot seat
func (c *Controller) PlayBotMove(ctx context.Context, gameID model.GameID, player model.CellState, pos model.Position) (*MoveResult, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.loadForMove(ctx, gameID, player)
	if err != nil {
		return nil, err
	}

	if !game.Seat(player).IsBot() {
		return nil, model.ErrSeatIsHuman
	}

	return c.applyMove(ctx, game, player, pos)
}

// loadForMove fetches a game and checks that player may move in it
func (c *Controller) loadForMove(ctx context.Context, gameID model.GameID, player model.CellState) (*model.Game, error) {
	if !player.IsPlayer() {
		return nil, model.ErrInvalidPlayer
	}

	game, err := c.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.State == model.GameStateAbandoned {
		return nil, model.ErrGameAbandoned
	}
	if game.IsOver() {
		return nil, model.ErrGameComplete
	}
	if game.CurrentPlayer() != player {
		return nil, model.ErrNotPlayerTurn
	}
	return game, nil
}

// applyMove checks the position against the board, plays it and persists the game
func (c *Controller) applyMove(ctx context.Context, game *model.Game, player model.CellState, pos model.Position) (*MoveResult, error) {
	board := game.Board
	if !board.InBounds(pos) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidPosition, pos)
	}
	if board.ToMove() != player {
		board.UpdateLegalMoves(player)
	}
	if !board.IsLegalMove(pos) {
		return nil, fmt.Errorf("%w: %s", model.ErrIllegalMove, pos)
	}

	now := c.clock.Now()
	flipped := board.ApplyMove(pos, player)
	move := model.MoveRecord{
		Number:   len(game.Moves) + 1,
		Player:   player,
		Position: pos,
		Flipped:  flipped,
		PlayedAt: now,
	}
	game.Moves = append(game.Moves, move)
	game.State = model.NextState(board, player)
	game.UpdatedAt = now

	result := &MoveResult{Game: game, Move: move, Passed: model.Empty}
	if game.CurrentPlayer() == player {
		result.Passed = player.Opponent()
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	logger := c.logger.With(slog.String("game_id", string(game.ID)))
	logger.Debug("move played",
		slog.String("player", player.String()),
		slog.String("position", pos.String()),
		slog.Int("flipped", len(flipped)),
		slog.String("state", string(game.State)),
	)
	if result.Passed != model.Empty {
		logger.Info("turn passed", slog.String("player", result.Passed.String()))
	}

	if game.IsOver() {
		summary := summarize(game, now)
		if err := c.storage.SaveSummary(ctx, summary); err != nil {
			logger.Error("failed to save game summary", slog.String("error", err.Error()))
			return nil, err
		}
		result.Summary = summary
		logger.Info("game completed",
			slog.String("outcome", string(summary.Outcome)),
			slog.Int("black", summary.BlackCount),
			slog.Int("white", summary.WhiteCount),
			slog.Int("moves", summary.MoveCount),
		)
	}

	return result, nil
}

// RestartGame clears the board and history of a game.
// When the game has human seats, token must belong to one of them.
func (c *Controller) RestartGame(ctx context.Context, gameID model.GameID, token string) (*model.Game, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.State == model.GameStateAbandoned {
		return nil, model.ErrGameAbandoned
	}
	if err := c.authorize(game, token); err != nil {
		return nil, err
	}

	game.Board.Reset()
	game.Moves = nil
	game.State = model.GameStateBlackTurn
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game restarted", slog.String("game_id", string(gameID)))
	return game, nil
}

// AbandonGame ends a game before it is decided
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID, token string) (*model.Game, error) {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(game, token); err != nil {
		return nil, err
	}

	if game.State == model.GameStateAbandoned {
		return game, nil // Already abandoned
	}
	if game.IsOver() {
		return nil, model.ErrGameComplete
	}

	game.State = model.GameStateAbandoned
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.Int("moves", len(game.Moves)),
	)
	return game, nil
}

// ListSummaries returns the most recently completed games, newest first
func (c *Controller) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	limit = min(limit, MaxSummaryLimit)
	return c.storage.ListSummaries(ctx, limit)
}

// authorize checks token against the human seats; bot-only games need none
func (c *Controller) authorize(game *model.Game, token string) error {
	if game.Black.IsBot() && game.White.IsBot() {
		return nil
	}
	return c.tokens.VerifyAny(game, token)
}

// summarize builds the archive record for a finished game
func summarize(game *model.Game, at time.Time) *model.GameSummary {
	return &model.GameSummary{
		GameID:      game.ID,
		Outcome:     game.Outcome(),
		BlackCount:  game.Board.Count(model.Black),
		WhiteCount:  game.Board.Count(model.White),
		MoveCount:   game.Board.MoveCount(),
		CompletedAt: at,
	}
}

func seatLabel(seat model.Seat) string {
	if seat.IsBot() {
		return "bot:" + seat.Strategy
	}
	return string(seat.Kind)
}
