package storage

import (
	"context"
	"errors"

	"github.com/GrahamMcBain/urit/internal/model"
)

// ErrConflict is returned when a transaction kept losing to concurrent writers.
// Callers may retry the whole operation.
var ErrConflict = errors.New("storage: transaction conflict, retry")

// ErrUnavailable wraps transport failures talking to the backing store.
// Like ErrConflict it is transient.
var ErrUnavailable = errors.New("storage: store unavailable")

// IsTransient reports whether err is worth retrying
func IsTransient(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrUnavailable)
}

// Tx is a read-modify-write view over the shared game state.
// Reads observe a consistent snapshot; writes are staged and only
// committed if the transaction function returns nil.
type Tx interface {
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	CurrentlyTagged(ctx context.Context) (model.PlayerID, bool, error)
	GameClock(ctx context.Context) (*model.GameClock, bool, error)

	SavePlayer(player *model.Player)
	SetCurrentlyTagged(id model.PlayerID)
	ClearCurrentlyTagged()
	SaveGameClock(clock *model.GameClock)
	AppendTagEvent(event *model.TagEvent)
}

// Storage defines the interface for data persistence
type Storage interface {
	// Atomically runs fn as a single transaction over the pointer, the clock
	// and every player record fn reads. fn may be invoked more than once.
	Atomically(ctx context.Context, fn func(tx Tx) error) error

	// Player operations
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Game state operations
	GetCurrentlyTagged(ctx context.Context) (model.PlayerID, bool, error)
	GetGameClock(ctx context.Context) (*model.GameClock, bool, error)

	// Tag event log, newest first
	RecentTagEvents(ctx context.Context, limit int) ([]*model.TagEvent, error)
}
