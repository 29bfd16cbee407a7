package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/othello/internal/api/apierr"
	"github.com/mcoot/othello/internal/api/handler"
	"github.com/mcoot/othello/internal/api/middleware"
	"github.com/mcoot/othello/internal/api/sse"
	"github.com/mcoot/othello/internal/services/bot"
	"github.com/mcoot/othello/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, cfg.HubManager, cfg.Broadcaster, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.SeatToken())

	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", gameHandler.LegalMoves).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/summaries", gameHandler.Summaries).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("unknown endpoint"))
	})

	return r
}
