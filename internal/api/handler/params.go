package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GrahamMcBain/urit/internal/api/apierr"
	"github.com/GrahamMcBain/urit/internal/model"
)

// playerIDVar reads the {id} route variable
func playerIDVar(r *http.Request) (model.PlayerID, error) {
	return model.ParsePlayerID(mux.Vars(r)["id"])
}

// limitParam reads ?limit=, returning def when absent
func limitParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apierr.NewInvalidRequestError("limit must be a positive integer")
	}
	return n, nil
}
