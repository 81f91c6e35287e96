package handler

import (
	"encoding/json"
	"net/http"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/api/request"
	"github.com/GrahamMcBain/urit/internal/api/response"
	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	"github.com/GrahamMcBain/urit/internal/services/cycle"
	"github.com/GrahamMcBain/urit/internal/services/game"
)

// TagHandler handles the tag endpoints
type TagHandler struct {
	controller  *game.Controller
	scheduler   *cycle.Scheduler
	authService *auth.Service
	clock       clock.Clock
}

// NewTagHandler creates a new tag handler
func NewTagHandler(controller *game.Controller, scheduler *cycle.Scheduler, authService *auth.Service, clock clock.Clock) *TagHandler {
	return &TagHandler{
		controller:  controller,
		scheduler:   scheduler,
		authService: authService,
		clock:       clock,
	}
}

// Tag handles POST /api/v1/tag
func (h *TagHandler) Tag(w http.ResponseWriter, r *http.Request) {
	var req request.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TaggerID <= 0 || req.TaggedID <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("tagger_id and tagged_id are required"))
		return
	}

	taggerID := model.PlayerID(req.TaggerID)
	if req.AdminOverride && !h.authService.IsAdmin(taggerID) {
		apierr.WriteError(w, model.ErrNotAdmin)
		return
	}

	if _, err := h.scheduler.CheckAndReset(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.controller.Tag(r.Context(), taggerID, model.PlayerID(req.TaggedID), req.AdminOverride)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if !result.Accepted {
		apierr.WriteError(w, apierr.FromRejection(result))
		return
	}

	response.JSON(w, http.StatusOK, response.TagResponseFromResult(result))
}

// Current handles GET /api/v1/tag/current
func (h *TagHandler) Current(w http.ResponseWriter, r *http.Request) {
	player, err := h.controller.CurrentlyTagged(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var resp response.CurrentlyTagged
	if player != nil {
		p := response.PlayerFromModel(player, model.DateOf(h.clock.Now()))
		resp.Player = &p
	}
	response.JSON(w, http.StatusOK, resp)
}

// Events handles GET /api/v1/tag/events
func (h *TagHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r, game.DefaultEventLimit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	events, err := h.controller.RecentEvents(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TagEvents{Events: response.TagEventsFromModel(events)})
}
