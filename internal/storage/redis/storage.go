package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks that Redis is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Atomically runs fn under WATCH on the pointer and clock keys; every player
// read inside fn adds its key to the watch set. If another client changes a
// watched key before EXEC, fn is re-run from fresh reads.
func (s *Storage) Atomically(ctx context.Context, fn func(tx storage.Tx) error) error {
	for attempt := 0; attempt <= s.cfg.MaxTxRetries; attempt++ {
		var fnErr error
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			t := &tx{Staged: storage.NewStaged(), rtx: rtx, cfg: s.cfg}
			if fnErr = fn(t); fnErr != nil {
				return fnErr
			}
			return t.commit(ctx)
		}, currentlyTaggedKey(), gameClockKey())

		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case err == fnErr, errors.Is(err, storage.ErrUnavailable):
			return err
		default:
			return fmt.Errorf("watch: %w: %w", storage.ErrUnavailable, err)
		}
	}
	return storage.ErrConflict
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getPlayer(ctx, s.client, id)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	// Get all player ids from the index
	members, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list player ids: %w: %w", storage.ErrUnavailable, err)
	}

	if len(members) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue // Skip invalid index entries
		}
		keys = append(keys, playerKey(model.PlayerID(id)))
	}

	// Fetch all players in one round trip using MGET
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w: %w", storage.ErrUnavailable, err)
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Record missing
		}
		var player model.Player
		if err := json.Unmarshal([]byte(str), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// Game state operations

func (s *Storage) GetCurrentlyTagged(ctx context.Context) (model.PlayerID, bool, error) {
	return getCurrentlyTagged(ctx, s.client)
}

func (s *Storage) GetGameClock(ctx context.Context) (*model.GameClock, bool, error) {
	return getGameClock(ctx, s.client)
}

// Tag event operations

func (s *Storage) RecentTagEvents(ctx context.Context, limit int) ([]*model.TagEvent, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, tagEventsKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list tag events: %w: %w", storage.ErrUnavailable, err)
	}

	events := make([]*model.TagEvent, 0, len(values))
	for _, val := range values {
		var event model.TagEvent
		if err := json.Unmarshal([]byte(val), &event); err != nil {
			continue // Skip invalid data
		}
		events = append(events, &event)
	}
	return events, nil
}
