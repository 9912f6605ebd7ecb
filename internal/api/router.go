package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mvidak/tictactoe-go/internal/api/handler"
	"github.com/mvidak/tictactoe-go/internal/api/middleware"
	"github.com/mvidak/tictactoe-go/internal/services/auth"
	"github.com/mvidak/tictactoe-go/internal/services/bot"
	"github.com/mvidak/tictactoe-go/internal/services/history"
	"github.com/mvidak/tictactoe-go/internal/services/match"
	"github.com/mvidak/tictactoe-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	Registry       *match.Registry
	HistoryService *history.Service
	BotService     *bot.Service
	HubManager     *ws.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.Registry, cfg.HistoryService)
	botHandler := handler.NewBotHandler(cfg.BotService)
	wsHandler := ws.NewHandler(cfg.AuthService, cfg.Registry, cfg.HubManager, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.CreateRoom).Methods(http.MethodPost)
	games.HandleFunc("/history", gameHandler.History).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/moves", gameHandler.Moves).Methods(http.MethodGet)

	// Practice bot (requires auth)
	botRoutes := api.PathPrefix("/bot").Subrouter()
	botRoutes.Use(authMiddleware)
	botRoutes.HandleFunc("/move", botHandler.Move).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Real-time surface; the handler authenticates before upgrading, so it
	// sits outside the JSON middleware chain
	r.Handle("/ws", wsHandler)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
