package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/scoring"
	"github.com/GrahamMcBain/urit/internal/storage"
)

const (
	DefaultEventLimit = 20
	MaxEventLimit     = 100
)

// Controller moves the "it" token between players
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new GameController
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Tag attempts to make taggedID "it" on behalf of taggerID.
// Rule violations are returned as a rejected result, not an error.
// adminOverride must already have been authorised by the caller.
func (c *Controller) Tag(ctx context.Context, taggerID, taggedID model.PlayerID, adminOverride bool) (*model.TagResult, error) {
	if taggerID <= 0 || taggedID <= 0 {
		return nil, model.ErrInvalidPlayerID
	}
	if taggerID == taggedID {
		c.logRejected(taggerID, taggedID, model.RejectSelfTag)
		return model.RejectedSelfTag(), nil
	}

	now := c.clock.Now()
	var result *model.TagResult

	err := c.storage.Atomically(ctx, func(tx storage.Tx) error {
		t := &transition{
			ctx:     ctx,
			tx:      tx,
			now:     now,
			today:   model.DateOf(now),
			records: make(map[model.PlayerID]*model.Player),
			logger:  c.logger,
		}
		var err error
		result, err = t.run(taggerID, taggedID, adminOverride)
		return err
	})
	if err != nil {
		c.logger.Error("tag failed",
			slog.Int64("tagger_id", int64(taggerID)),
			slog.Int64("tagged_id", int64(taggedID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if !result.Accepted {
		c.logRejected(taggerID, taggedID, result.Code)
		return result, nil
	}

	attrs := []any{
		slog.Int64("tagger_id", int64(taggerID)),
		slog.Int64("tagged_id", int64(taggedID)),
		slog.Bool("admin_override", adminOverride),
	}
	if d := result.Event.PreviousHolderDuration; d != nil {
		attrs = append(attrs, slog.Duration("previous_holder_duration", *d))
	}
	c.logger.Info("tag accepted", attrs...)

	return result, nil
}

func (c *Controller) logRejected(taggerID, taggedID model.PlayerID, code model.RejectionCode) {
	c.logger.Debug("tag rejected",
		slog.Int64("tagger_id", int64(taggerID)),
		slog.Int64("tagged_id", int64(taggedID)),
		slog.String("code", string(code)),
	)
}

// transition is one attempt at a tag inside a store transaction.
// It may be discarded and rebuilt if the store retries.
type transition struct {
	ctx    context.Context
	tx     storage.Tx
	now    time.Time
	today  model.Date
	logger *slog.Logger

	// records caches every player touched so the holder, tagger and target
	// can be the same record without clobbering each other
	records map[model.PlayerID]*model.Player
}

func (t *transition) run(taggerID, taggedID model.PlayerID, adminOverride bool) (*model.TagResult, error) {
	holder, err := t.holder()
	if err != nil {
		return nil, err
	}

	if holder != nil && holder.ID != taggerID && !adminOverride {
		return model.RejectedNotHolder(holder), nil
	}

	target, err := t.player(taggedID)
	if err != nil {
		return nil, err
	}
	if !adminOverride && target.LastTaggedDate != nil && *target.LastTaggedDate == t.today {
		return model.RejectedAlreadyTaggedToday(target), nil
	}

	var previous *time.Duration
	if holder != nil {
		previous = t.award(holder)
	}

	tagger, err := t.player(taggerID)
	if err != nil {
		return nil, err
	}
	tagger.TimesTaggedOthers++

	taggedAt := t.now
	by := taggerID
	target.TaggedAt = &taggedAt
	target.TaggedBy = &by
	target.LastTaggedDate = model.DatePtr(t.today)
	target.TimesTagged++

	for _, p := range t.records {
		p.UpdatedAt = t.now
		t.tx.SavePlayer(p)
	}
	t.tx.SetCurrentlyTagged(taggedID)

	event := model.NewTagEvent(taggerID, taggedID, t.now, previous)
	t.tx.AppendTagEvent(event)

	return model.AcceptedTag(event), nil
}

// holder resolves the pointer to a record. A pointer naming a missing
// record is treated as nobody being "it".
func (t *transition) holder() (*model.Player, error) {
	id, ok, err := t.tx.CurrentlyTagged(t.ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	p, err := t.tx.GetPlayer(t.ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		t.logger.Warn("currently tagged player has no record",
			slog.Int64("player_id", int64(id)),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.records[id] = p
	return p, nil
}

// player loads a record, creating a fresh one for unseen players
func (t *transition) player(id model.PlayerID) (*model.Player, error) {
	if p, ok := t.records[id]; ok {
		return p, nil
	}

	p, err := t.tx.GetPlayer(t.ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		p = model.NewPlayer(id, t.now)
	} else if err != nil {
		return nil, err
	}

	t.records[id] = p
	return p, nil
}

// award closes out the holder's time as "it" and returns how long it lasted.
// A holder without TaggedAt earns nothing.
func (t *transition) award(holder *model.Player) *time.Duration {
	if holder.TaggedAt == nil {
		t.logger.Warn("currently tagged player has no tag time",
			slog.Int64("player_id", int64(holder.ID)),
		)
		return nil
	}

	d := max(t.now.Sub(*holder.TaggedAt), 0)
	points := scoring.PointsFor(d)

	scoring.ApplyAward(holder, points, t.today)
	holder.TotalTaggedDuration += d
	holder.ClearTagged()

	return &d
}

// CurrentlyTagged returns the player who is "it", or nil if nobody is
func (c *Controller) CurrentlyTagged(ctx context.Context) (*model.Player, error) {
	id, ok, err := c.storage.GetCurrentlyTagged(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	p, err := c.storage.GetPlayer(ctx, id)
	if errors.Is(err, model.ErrPlayerNotFound) {
		c.logger.Warn("currently tagged player has no record",
			slog.Int64("player_id", int64(id)),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RecentEvents returns up to limit tag events, newest first
func (c *Controller) RecentEvents(ctx context.Context, limit int) ([]*model.TagEvent, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	limit = min(limit, MaxEventLimit)
	return c.storage.RecentTagEvents(ctx, limit)
}
