package auth

import (
	"errors"
	"slices"

	"golang.org/x/crypto/bcrypt"

	"github.com/GrahamMcBain/urit/internal/model"
)

// Errors
var (
	ErrInvalidAPIKey = errors.New("invalid api key")
)

// DefaultAdminIDs is the built-in administrator allow-list
var DefaultAdminIDs = []model.PlayerID{1626, 2, 6791}

// Config holds configuration for the auth service
type Config struct {
	AdminIDs []model.PlayerID
	// APIKeyHash is a bcrypt hash of the shared API key. Empty disables the check.
	APIKeyHash string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		AdminIDs: slices.Clone(DefaultAdminIDs),
	}
}

// Service authorises API callers and administrator actions
type Service struct {
	admins     map[model.PlayerID]struct{}
	apiKeyHash []byte
}

// New creates a new AuthService
func New(cfg Config) *Service {
	if cfg.AdminIDs == nil {
		cfg.AdminIDs = DefaultAdminIDs
	}

	admins := make(map[model.PlayerID]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = struct{}{}
	}

	s := &Service{admins: admins}
	if cfg.APIKeyHash != "" {
		s.apiKeyHash = []byte(cfg.APIKeyHash)
	}
	return s
}

// IsAdmin reports whether the player may use administrator overrides
func (s *Service) IsAdmin(id model.PlayerID) bool {
	_, ok := s.admins[id]
	return ok
}

// RequiresAPIKey reports whether callers must present an API key
func (s *Service) RequiresAPIKey() bool {
	return len(s.apiKeyHash) > 0
}

// ValidateAPIKey checks a presented key against the configured hash
func (s *Service) ValidateAPIKey(key string) error {
	if !s.RequiresAPIKey() {
		return nil
	}
	if key == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// HashAPIKey produces the value to configure as the API key hash
func HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidAPIKey
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
