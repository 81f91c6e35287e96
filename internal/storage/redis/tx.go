package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// tx reads under WATCH and buffers writes for a single MULTI/EXEC
type tx struct {
	*storage.Staged
	rtx *redis.Tx
	cfg Config
}

func (t *tx) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if p, ok := t.StagedPlayer(id); ok {
		return p, nil
	}

	key := playerKey(id)
	if err := t.rtx.Watch(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("watch player %d: %w: %w", id, storage.ErrUnavailable, err)
	}
	return getPlayer(ctx, t.rtx, id)
}

func (t *tx) CurrentlyTagged(ctx context.Context) (model.PlayerID, bool, error) {
	if id, ok, handled := t.StagedPointer(); handled {
		return id, ok, nil
	}
	return getCurrentlyTagged(ctx, t.rtx)
}

func (t *tx) GameClock(ctx context.Context) (*model.GameClock, bool, error) {
	if t.Clock != nil {
		c := *t.Clock
		return &c, true, nil
	}
	return getGameClock(ctx, t.rtx)
}

// commit writes the staged changes in one MULTI/EXEC.
// EXEC fails with redis.TxFailedErr if any watched key changed.
func (t *tx) commit(ctx context.Context) error {
	if t.Empty() {
		return nil
	}

	players := make(map[string][]byte, len(t.Players))
	ids := make([]any, 0, len(t.Players))
	for id, p := range t.Players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		players[playerKey(id)] = data
		ids = append(ids, int64(id))
	}

	var clockData []byte
	if t.Clock != nil {
		data, err := json.Marshal(t.Clock)
		if err != nil {
			return err
		}
		clockData = data
	}

	events := make([]any, 0, len(t.Events))
	for _, e := range t.Events {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		events = append(events, data)
	}

	_, err := t.rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range players {
			pipe.Set(ctx, key, data, 0)
		}
		if len(ids) > 0 {
			pipe.SAdd(ctx, playersIndexKey(), ids...)
		}

		switch {
		case t.PointerSet:
			pipe.Set(ctx, currentlyTaggedKey(), int64(t.Pointer), 0)
		case t.PointerCleared:
			pipe.Del(ctx, currentlyTaggedKey())
		}

		if clockData != nil {
			pipe.Set(ctx, gameClockKey(), clockData, 0)
		}

		if len(events) > 0 {
			pipe.LPush(ctx, tagEventsKey(), events...)
			if t.cfg.EventLogLimit > 0 {
				pipe.LTrim(ctx, tagEventsKey(), 0, t.cfg.EventLogLimit-1)
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("commit: %w: %w", storage.ErrUnavailable, err)
	}
	return err
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getPlayer(ctx context.Context, c getter, id model.PlayerID) (*model.Player, error) {
	data, err := c.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player %d: %w: %w", id, storage.ErrUnavailable, err)
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decode player %d: %w", id, err)
	}
	return &player, nil
}

func getCurrentlyTagged(ctx context.Context, c getter) (model.PlayerID, bool, error) {
	id, err := c.Get(ctx, currentlyTaggedKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get currently tagged: %w: %w", storage.ErrUnavailable, err)
	}
	return model.PlayerID(id), true, nil
}

func getGameClock(ctx context.Context, c getter) (*model.GameClock, bool, error) {
	data, err := c.Get(ctx, gameClockKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get game clock: %w: %w", storage.ErrUnavailable, err)
	}

	var clock model.GameClock
	if err := json.Unmarshal(data, &clock); err != nil {
		return nil, false, fmt.Errorf("decode game clock: %w", err)
	}
	return &clock, true, nil
}
