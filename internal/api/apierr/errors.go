package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/auth"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPlayerID    = "INVALID_PLAYER_ID"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotAdmin           = "NOT_ADMIN"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeSelfTag            = "SELF_TAG"
	CodeNotHolder          = "NOT_HOLDER"
	CodeAlreadyTaggedToday = "ALREADY_TAGGED_TODAY"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// retryAfterSeconds is advertised on transient store failures
const retryAfterSeconds = "1"

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	if he.status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidPlayerID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerID, "Player id must be a positive integer"}}
	case errors.Is(err, model.ErrInvalidPatch):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid player update"}}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeNotAdmin, "Only administrators can do that"}}

	case errors.Is(err, auth.ErrInvalidAPIKey):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid API key"}}

	case storage.IsTransient(err):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Game state is busy, try again"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// FromRejection converts a rejected tag into a client error
func FromRejection(result *model.TagResult) error {
	switch result.Code {
	case model.RejectSelfTag:
		return &httpError{http.StatusBadRequest, APIError{CodeSelfTag, result.Reason}}
	case model.RejectNotHolder:
		return &httpError{http.StatusForbidden, APIError{CodeNotHolder, result.Reason}}
	case model.RejectAlreadyTaggedToday:
		return &httpError{http.StatusConflict, APIError{CodeAlreadyTaggedToday, result.Reason}}
	default:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, result.Reason}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "API key required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
