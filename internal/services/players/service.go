package players

import (
	"context"
	"errors"
	"log/slog"

	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// Service owns the per-player records
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new PlayerService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// GetPlayer retrieves a player by id
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id <= 0 {
		return nil, model.ErrInvalidPlayerID
	}
	return s.storage.GetPlayer(ctx, id)
}

// UpsertPlayer merges the patch onto the stored record, creating a
// zero-valued record first if the player has never been seen
func (s *Service) UpsertPlayer(ctx context.Context, patch model.PlayerPatch) (*model.Player, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var result *model.Player
	created := false

	err := s.storage.Atomically(ctx, func(tx storage.Tx) error {
		player, err := tx.GetPlayer(ctx, patch.ID)
		created = false
		if errors.Is(err, model.ErrPlayerNotFound) {
			player = model.NewPlayer(patch.ID, now)
			created = true
		} else if err != nil {
			return err
		}

		player.Apply(patch, now)
		tx.SavePlayer(player)
		result = player
		return nil
	})
	if err != nil {
		s.logger.Error("failed to upsert player",
			slog.Int64("player_id", int64(patch.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if created {
		s.logger.Info("player created", slog.Int64("player_id", int64(patch.ID)))
	}

	return result, nil
}
