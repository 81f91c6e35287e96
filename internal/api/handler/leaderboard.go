package handler

import (
	"net/http"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/api/response"
	"github.com/GrahamMcBain/urit/internal/services/cycle"
	"github.com/GrahamMcBain/urit/internal/services/leaderboard"
)

// DefaultLeaderboardLimit is used when the request gives no limit
const DefaultLeaderboardLimit = 20

// LeaderboardHandler handles the leaderboard endpoint
type LeaderboardHandler struct {
	leaderboard *leaderboard.Service
	scheduler   *cycle.Scheduler
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard *leaderboard.Service, scheduler *cycle.Scheduler) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		scheduler:   scheduler,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, DefaultLeaderboardLimit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if _, err := h.scheduler.CheckAndReset(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
