package memory

import (
	"context"
	"sync"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players         map[model.PlayerID]*model.Player
	currentlyTagged *model.PlayerID
	clock           *model.GameClock
	events          []*model.TagEvent // newest first
	eventLimit      int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return NewWithEventLimit(1000)
}

// NewWithEventLimit creates an in-memory storage that keeps at most limit tag events
func NewWithEventLimit(limit int) *Storage {
	return &Storage{
		players:    make(map[model.PlayerID]*model.Player),
		eventLimit: limit,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// tx reads straight from the maps; the storage lock is held for its lifetime
type tx struct {
	*storage.Staged
	s *Storage
}

func (t *tx) GetPlayer(_ context.Context, id model.PlayerID) (*model.Player, error) {
	if p, ok := t.StagedPlayer(id); ok {
		return p, nil
	}
	return t.s.getPlayerLocked(id)
}

func (t *tx) CurrentlyTagged(_ context.Context) (model.PlayerID, bool, error) {
	if id, ok, handled := t.StagedPointer(); handled {
		return id, ok, nil
	}
	id, ok := t.s.currentlyTaggedLocked()
	return id, ok, nil
}

func (t *tx) GameClock(_ context.Context) (*model.GameClock, bool, error) {
	if t.Clock != nil {
		c := *t.Clock
		return &c, true, nil
	}
	c, ok := t.s.clockLocked()
	return c, ok, nil
}

// Atomically holds the write lock for the whole transaction and applies
// staged writes only when fn succeeds
func (s *Storage) Atomically(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{Staged: storage.NewStaged(), s: s}
	if err := fn(t); err != nil {
		return err
	}

	for id, p := range t.Players {
		s.players[id] = p
	}
	switch {
	case t.PointerSet:
		id := t.Pointer
		s.currentlyTagged = &id
	case t.PointerCleared:
		s.currentlyTagged = nil
	}
	if t.Clock != nil {
		s.clock = t.Clock
	}
	for _, e := range t.Events {
		s.events = append([]*model.TagEvent{e}, s.events...)
	}
	if s.eventLimit > 0 && len(s.events) > s.eventLimit {
		s.events = s.events[:s.eventLimit]
	}
	return nil
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(id)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.Clone())
	}
	return players, nil
}

func (s *Storage) getPlayerLocked(id model.PlayerID) (*model.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return p.Clone(), nil
}

// Game state operations

func (s *Storage) GetCurrentlyTagged(ctx context.Context) (model.PlayerID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.currentlyTaggedLocked()
	return id, ok, nil
}

func (s *Storage) currentlyTaggedLocked() (model.PlayerID, bool) {
	if s.currentlyTagged == nil {
		return 0, false
	}
	return *s.currentlyTagged, true
}

func (s *Storage) GetGameClock(ctx context.Context) (*model.GameClock, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clockLocked()
	return c, ok, nil
}

func (s *Storage) clockLocked() (*model.GameClock, bool) {
	if s.clock == nil {
		return nil, false
	}
	c := *s.clock
	return &c, true
}

// Tag event operations

func (s *Storage) RecentTagEvents(ctx context.Context, limit int) ([]*model.TagEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	events := make([]*model.TagEvent, limit)
	for i := range limit {
		e := *s.events[i]
		events[i] = &e
	}
	return events, nil
}
