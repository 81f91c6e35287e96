package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/api/request"
	"github.com/GrahamMcBain/urit/internal/api/response"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	"github.com/GrahamMcBain/urit/internal/services/cycle"
)

// AdminHandler handles the administrator endpoints
type AdminHandler struct {
	scheduler   *cycle.Scheduler
	authService *auth.Service
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(scheduler *cycle.Scheduler, authService *auth.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		scheduler:   scheduler,
		authService: authService,
		logger:      logger,
	}
}

// Reset handles POST /api/v1/admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req request.AdminResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	adminID := model.PlayerID(req.AdminID)
	if !h.authService.IsAdmin(adminID) {
		h.logger.Warn("reset refused", slog.Int64("player_id", req.AdminID))
		apierr.WriteError(w, model.ErrNotAdmin)
		return
	}

	if err := h.scheduler.ForceReset(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.logger.Info("game reset by administrator", slog.Int64("admin_id", req.AdminID))

	h.writeClock(w, r, true)
}

// CheckReset handles POST /api/v1/admin/check-reset
func (h *AdminHandler) CheckReset(w http.ResponseWriter, r *http.Request) {
	wasReset, err := h.scheduler.CheckAndReset(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.writeClock(w, r, wasReset)
}

func (h *AdminHandler) writeClock(w http.ResponseWriter, r *http.Request, wasReset bool) {
	c, err := h.scheduler.GameClock(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResetResponse{
		Reset: wasReset,
		Clock: response.GameClockFromModel(c),
	})
}
