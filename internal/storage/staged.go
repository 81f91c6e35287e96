package storage

import "github.com/GrahamMcBain/urit/internal/model"

// Staged collects the writes of a transaction until commit.
// Store implementations embed it in their Tx types.
type Staged struct {
	Players map[model.PlayerID]*model.Player

	// Pointer is the new currently-tagged id when PointerSet is true;
	// PointerCleared removes it instead.
	Pointer        model.PlayerID
	PointerSet     bool
	PointerCleared bool

	Clock  *model.GameClock
	Events []*model.TagEvent
}

// NewStaged returns an empty write set
func NewStaged() *Staged {
	return &Staged{Players: make(map[model.PlayerID]*model.Player)}
}

func (s *Staged) SavePlayer(player *model.Player) {
	s.Players[player.ID] = player.Clone()
}

func (s *Staged) SetCurrentlyTagged(id model.PlayerID) {
	s.Pointer = id
	s.PointerSet = true
	s.PointerCleared = false
}

func (s *Staged) ClearCurrentlyTagged() {
	s.Pointer = 0
	s.PointerSet = false
	s.PointerCleared = true
}

func (s *Staged) SaveGameClock(clock *model.GameClock) {
	c := *clock
	s.Clock = &c
}

func (s *Staged) AppendTagEvent(event *model.TagEvent) {
	e := *event
	s.Events = append(s.Events, &e)
}

// Empty reports whether nothing was written
func (s *Staged) Empty() bool {
	return len(s.Players) == 0 && !s.PointerSet && !s.PointerCleared &&
		s.Clock == nil && len(s.Events) == 0
}

// StagedPlayer returns a copy of a player written earlier in the transaction
func (s *Staged) StagedPlayer(id model.PlayerID) (*model.Player, bool) {
	p, ok := s.Players[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// StagedPointer returns the pointer as written earlier in the transaction.
// handled is false when the transaction has not touched the pointer.
func (s *Staged) StagedPointer() (id model.PlayerID, ok bool, handled bool) {
	switch {
	case s.PointerSet:
		return s.Pointer, true, true
	case s.PointerCleared:
		return 0, false, true
	default:
		return 0, false, false
	}
}
