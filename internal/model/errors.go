package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPlayerID = errors.New("invalid player id")
	ErrInvalidPatch    = errors.New("invalid player update")

	// Admin errors
	ErrNotAdmin = errors.New("player is not an administrator")
)
