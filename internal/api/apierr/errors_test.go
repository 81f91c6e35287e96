package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

func TestWriteErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
		{fmt.Errorf("lookup: %w", model.ErrPlayerNotFound), http.StatusNotFound, CodePlayerNotFound},
		{model.ErrInvalidPlayerID, http.StatusBadRequest, CodeInvalidPlayerID},
		{model.ErrNotAdmin, http.StatusForbidden, CodeNotAdmin},
		{storage.ErrConflict, http.StatusServiceUnavailable, CodeStoreUnavailable},
		{fmt.Errorf("get: %w: %w", storage.ErrUnavailable, assert.AnError), http.StatusServiceUnavailable, CodeStoreUnavailable},
		{assert.AnError, http.StatusInternalServerError, CodeInternalError},
		{NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, tc.err)

		assert.Equal(t, tc.status, rr.Code, tc.err.Error())

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Error.Code)
	}
}

func TestTransientErrorsAdvertiseRetry(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, storage.ErrConflict)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	rr = httptest.NewRecorder()
	WriteError(rr, model.ErrPlayerNotFound)
	assert.Empty(t, rr.Header().Get("Retry-After"))
}

func TestFromRejection(t *testing.T) {
	holder := &model.Player{ID: 2, DisplayName: "Bob"}

	cases := []struct {
		result *model.TagResult
		status int
		code   string
	}{
		{model.RejectedSelfTag(), http.StatusBadRequest, CodeSelfTag},
		{model.RejectedNotHolder(holder), http.StatusForbidden, CodeNotHolder},
		{model.RejectedAlreadyTaggedToday(holder), http.StatusConflict, CodeAlreadyTaggedToday},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, FromRejection(tc.result))

		assert.Equal(t, tc.status, rr.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Error.Code)
		assert.Equal(t, tc.result.Reason, resp.Error.Message)
	}
}
