package cycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// Scheduler resets the game once a cycle has elapsed.
// There is no background timer: resets happen when a request checks.
type Scheduler struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cycle   time.Duration
}

// New creates a scheduler using model.CycleLength
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		storage: storage,
		clock:   clock,
		logger:  logger,
		cycle:   model.CycleLength,
	}
}

// CheckAndReset clears the "it" pointer if more than a cycle has passed
// since the last reset. It reports whether a reset happened.
func (s *Scheduler) CheckAndReset(ctx context.Context) (bool, error) {
	return s.reset(ctx, false)
}

// ForceReset clears the "it" pointer regardless of the clock
func (s *Scheduler) ForceReset(ctx context.Context) error {
	_, err := s.reset(ctx, true)
	return err
}

// GameClock returns the stored clock, or a fresh one if the game has never been seen
func (s *Scheduler) GameClock(ctx context.Context) (*model.GameClock, error) {
	c, ok, err := s.storage.GetGameClock(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewGameClock(s.clock.Now()), nil
	}
	return c, nil
}

func (s *Scheduler) reset(ctx context.Context, force bool) (bool, error) {
	now := s.clock.Now()
	var (
		wasReset  bool
		holderID  model.PlayerID
		hadHolder bool
	)

	err := s.storage.Atomically(ctx, func(tx storage.Tx) error {
		wasReset, hadHolder = false, false

		c, ok, err := tx.GameClock(ctx)
		if err != nil {
			return err
		}
		if !ok {
			c = model.NewGameClock(now)
			tx.SaveGameClock(c)
		}

		if !force && !c.Due(now, s.cycle) {
			return nil
		}

		holderID, hadHolder, err = tx.CurrentlyTagged(ctx)
		if err != nil {
			return err
		}
		if hadHolder {
			if err := clearHolder(ctx, tx, holderID, now); err != nil {
				return err
			}
			tx.ClearCurrentlyTagged()
		}

		c.MarkReset(now)
		tx.SaveGameClock(c)
		wasReset = true
		return nil
	})
	if err != nil {
		s.logger.Error("game reset failed",
			slog.Bool("forced", force),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	if wasReset {
		attrs := []any{slog.Bool("forced", force)}
		if hadHolder {
			attrs = append(attrs, slog.Int64("cleared_player_id", int64(holderID)))
		}
		s.logger.Info("game cycle reset", attrs...)
	}

	return wasReset, nil
}

// clearHolder drops the tagged fields of the player the pointer names.
// No points are awarded for the interrupted turn.
func clearHolder(ctx context.Context, tx storage.Tx, id model.PlayerID, now time.Time) error {
	p, err := tx.GetPlayer(ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !p.IsTagged() {
		return nil
	}

	p.ClearTagged()
	p.UpdatedAt = now
	tx.SavePlayer(p)
	return nil
}
