package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer(7, s.now)
	player.DisplayName = "Alice"

	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(player)
		return nil
	})
	s.Require().NoError(err)

	got, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 7)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestReturnedPlayersAreCopies() {
	_ = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(model.NewPlayer(7, s.now))
		return nil
	})

	got, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	got.TimesTagged = 99

	again, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(0, again.TimesTagged)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(model.NewPlayer(1, s.now))
		tx.SavePlayer(model.NewPlayer(2, s.now))
		return nil
	})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

// Transaction tests

func (s *StorageSuite) TestFailedTransactionCommitsNothing() {
	boom := errors.New("boom")
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(model.NewPlayer(7, s.now))
		tx.SetCurrentlyTagged(7)
		tx.AppendTagEvent(model.NewTagEvent(1, 7, s.now, nil))
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.storage.GetPlayer(s.ctx, 7)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, ok, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	events, err := s.storage.RecentTagEvents(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *StorageSuite) TestTransactionReadsItsOwnWrites() {
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		p := model.NewPlayer(7, s.now)
		p.TimesTagged = 3
		tx.SavePlayer(p)
		tx.SetCurrentlyTagged(7)
		tx.SaveGameClock(model.NewGameClock(s.now))

		got, err := tx.GetPlayer(s.ctx, 7)
		s.Require().NoError(err)
		s.Equal(3, got.TimesTagged)

		id, ok, err := tx.CurrentlyTagged(s.ctx)
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(model.PlayerID(7), id)

		tx.ClearCurrentlyTagged()
		_, ok, err = tx.CurrentlyTagged(s.ctx)
		s.Require().NoError(err)
		s.False(ok)

		c, ok, err := tx.GameClock(s.ctx)
		s.Require().NoError(err)
		s.True(ok)
		s.True(c.LastResetAt.Equal(s.now))
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.storage.Atomically(ctx, func(tx storage.Tx) error {
		called = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}

// Game state tests

func (s *StorageSuite) TestCurrentlyTaggedPointer() {
	_, ok, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	_ = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SetCurrentlyTagged(2)
		return nil
	})
	id, ok, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(model.PlayerID(2), id)

	_ = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.ClearCurrentlyTagged()
		return nil
	})
	_, ok, err = s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StorageSuite) TestGameClock() {
	_, ok, err := s.storage.GetGameClock(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	_ = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SaveGameClock(model.NewGameClock(s.now))
		return nil
	})

	c, ok, err := s.storage.GetGameClock(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.True(c.CycleStartedAt.Equal(s.now))
}

// Tag event tests

func (s *StorageSuite) TestRecentTagEventsNewestFirstAndTrimmed() {
	store := NewWithEventLimit(3)
	for i := range 5 {
		at := s.now.Add(time.Duration(i) * time.Second)
		_ = store.Atomically(s.ctx, func(tx storage.Tx) error {
			tx.AppendTagEvent(model.NewTagEvent(1, model.PlayerID(10+i), at, nil))
			return nil
		})
	}

	events, err := store.RecentTagEvents(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(model.PlayerID(14), events[0].TaggedID)
	s.Equal(model.PlayerID(12), events[2].TaggedID)

	events, err = store.RecentTagEvents(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(events, 1)
}
