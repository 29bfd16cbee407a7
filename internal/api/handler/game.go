package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/othello/internal/api/middleware"
	"github.com/mcoot/othello/internal/api/request"
	"github.com/mcoot/othello/internal/api/response"
	"github.com/mcoot/othello/internal/api/sse"
	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/bot"
	"github.com/mcoot/othello/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler.
// botService and hubManager may be nil; bots then never move and no events are sent.
func NewGameHandler(
	gameController *game.Controller,
	botService *bot.Service,
	hubManager *sse.HubManager,
	broadcaster *sse.Broadcaster,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
		logger:         logger.With(slog.String("component", "game-handler")),
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	// An empty body creates a default human-vs-human game
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	width, height := req.Dimensions()
	g, tokens, err := h.gameController.CreateGame(r.Context(), game.CreateParams{
		Width:  width,
		Height: height,
		Rules:  model.Rules(req.Rules),
		Black:  game.SeatSpec{Kind: model.SeatKind(req.Black.Kind), Strategy: req.Black.Strategy},
		White:  game.SeatSpec{Kind: model.SeatKind(req.White.Kind), Strategy: req.White.Strategy},
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	// A bot holding Black opens straight away
	g = h.afterChange(r.Context(), g)

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{
		Game:       response.GameFromModel(g),
		SeatTokens: tokens,
	})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// LegalMoves handles GET /api/v1/games/{id}/moves
func (h *GameHandler) LegalMoves(w http.ResponseWriter, r *http.Request) {
	g, err := h.loadGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.LegalMovesResponse{
		Moves: response.PositionsFromModel(game.LegalMovesOf(g)),
	}
	if player := g.CurrentPlayer(); player != model.Empty {
		resp.Player = player.String()
	}
	response.JSON(w, http.StatusOK, resp)
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := model.ParsePlayer(req.Player)
	if err != nil {
		WriteError(w, NewInvalidRequestError(`player must be "black" or "white"`))
		return
	}

	pos, err := req.Position()
	if err != nil {
		if !errors.Is(err, model.ErrInvalidPosition) {
			err = NewInvalidRequestError(err.Error())
		}
		WriteError(w, err)
		return
	}

	token := middleware.GetSeatToken(r.Context())
	result, err := h.gameController.PlayMove(r.Context(), gameID(r), player, token, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastMove(result)
	}

	resp := response.MoveResponse{
		Move: response.MoveFromModel(result.Move),
	}
	if result.Passed != model.Empty {
		resp.Passed = result.Passed.String()
	}

	final := result.Game
	summary := result.Summary
	if !final.IsOver() {
		for _, action := range h.processBotTurns(r.Context(), final.ID) {
			if action.Type == bot.ActionMove {
				resp.BotMoves = append(resp.BotMoves, response.MoveFromModel(action.Result.Move))
			}
			final = action.Result.Game
			if action.Result.Summary != nil {
				summary = action.Result.Summary
			}
		}
	}

	resp.Game = response.GameFromModel(final)
	if summary != nil {
		s := response.GameSummaryFromModel(summary)
		resp.Summary = &s
	}
	response.JSON(w, http.StatusOK, resp)
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSeatToken(r.Context())
	g, err := h.gameController.RestartGame(r.Context(), gameID(r), token)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameRestarted(g)
	}

	g = h.afterChange(r.Context(), g)

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSeatToken(r.Context())
	g, err := h.gameController.AbandonGame(r.Context(), gameID(r), token)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameAbandoned(g)
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("event feeds are disabled"))
		return
	}

	id := gameID(r)
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}

// Summaries handles GET /api/v1/summaries
func (h *GameHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	summaries, err := h.gameController.ListSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.SummariesResponse{Summaries: make([]response.GameSummary, len(summaries))}
	for i, s := range summaries {
		resp.Summaries[i] = response.GameSummaryFromModel(s)
	}
	response.JSON(w, http.StatusOK, resp)
}

// loadGame fetches a game, first letting a bot play if one was left to move
func (h *GameHandler) loadGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	g, err := h.gameController.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if seat := g.Seat(g.CurrentPlayer()); seat != nil && seat.IsBot() {
		g = h.afterChange(ctx, g)
	}
	return g, nil
}

// afterChange lets bots move after a game is created or restarted and returns the latest state
func (h *GameHandler) afterChange(ctx context.Context, g *model.Game) *model.Game {
	if actions := h.processBotTurns(ctx, g.ID); len(actions) > 0 {
		g = actions[len(actions)-1].Result.Game
	}
	return g
}

// processBotTurns runs bot moves and broadcasts SSE updates for each.
// The human change is already saved, so a failed cascade is logged and the
// next read of the game picks it up again.
func (h *GameHandler) processBotTurns(ctx context.Context, id model.GameID) []bot.BotAction {
	if h.botService == nil {
		return nil
	}

	actions, err := h.botService.ProcessBotTurns(context.WithoutCancel(ctx), id)
	if err != nil {
		h.logger.Error("bot turns failed",
			slog.String("game_id", string(id)),
			slog.Int("actions", len(actions)),
			slog.String("error", err.Error()),
		)
	}

	if h.broadcaster != nil {
		for _, action := range actions {
			if action.Type == bot.ActionMove {
				h.broadcaster.BroadcastMove(action.Result)
			}
		}
	}
	return actions
}

// Health handles GET /api/v1/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
