package handler

import (
	"encoding/json"
	"net/http"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/api/request"
	"github.com/GrahamMcBain/urit/internal/api/response"
	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/players"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players *players.Service
	clock   clock.Clock
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *players.Service, clock clock.Clock) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		clock:   clock,
	}
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.players.GetPlayer(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, model.DateOf(h.clock.Now())))
}

// Update handles PUT /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.players.UpsertPlayer(r.Context(), req.Patch(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player, model.DateOf(h.clock.Now())))
}
