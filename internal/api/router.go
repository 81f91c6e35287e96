package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/GrahamMcBain/urit/internal/api/handler"
	"github.com/GrahamMcBain/urit/internal/api/middleware"
	"github.com/GrahamMcBain/urit/internal/api/response"
	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	"github.com/GrahamMcBain/urit/internal/services/cycle"
	"github.com/GrahamMcBain/urit/internal/services/game"
	"github.com/GrahamMcBain/urit/internal/services/leaderboard"
	"github.com/GrahamMcBain/urit/internal/services/players"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Clock              clock.Clock
	AuthService        *auth.Service
	PlayerService      *players.Service
	GameController     *game.Controller
	CycleScheduler     *cycle.Scheduler
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService, cfg.Clock)
	tagHandler := handler.NewTagHandler(cfg.GameController, cfg.CycleScheduler, cfg.AuthService, cfg.Clock)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.CycleScheduler)
	adminHandler := handler.NewAdminHandler(cfg.CycleScheduler, cfg.AuthService, cfg.Logger)

	// Create middleware
	apiKeyMiddleware := middleware.APIKey(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	// Logging runs outermost so recovered panics carry the request id
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Health check endpoint (no API key)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires the API key when one is configured
	protected := api.NewRoute().Subrouter()
	protected.Use(apiKeyMiddleware)

	// Player routes
	protected.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPut)

	// Tag routes
	protected.HandleFunc("/tag", tagHandler.Tag).Methods(http.MethodPost)
	protected.HandleFunc("/tag/current", tagHandler.Current).Methods(http.MethodGet)
	protected.HandleFunc("/tag/events", tagHandler.Events).Methods(http.MethodGet)

	// Leaderboard
	protected.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// Admin routes
	protected.HandleFunc("/admin/reset", adminHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/admin/check-reset", adminHandler.CheckReset).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
