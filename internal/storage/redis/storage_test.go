package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	// other plays a second server instance racing this one
	other *redis.Client
	ctx   context.Context
	now   time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})
	s.other = redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.MaxTxRetries = 2
	cfg.EventLogLimit = 3

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.other != nil {
		_ = s.other.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) savePlayer(p *model.Player) {
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(p)
		return nil
	})
	s.Require().NoError(err)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer(7, s.now)
	player.DisplayName = "Alice"
	taggedAt := s.now.Add(time.Minute)
	by := model.PlayerID(3)
	player.TaggedAt = &taggedAt
	player.TaggedBy = &by
	player.LastTaggedDate = model.DatePtr("2024-01-01")
	player.TotalTaggedDuration = 1500 * time.Millisecond
	player.LifetimePoints = 123456
	s.savePlayer(player)

	got, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
	s.Require().NotNil(got.TaggedAt)
	s.True(got.TaggedAt.Equal(taggedAt))
	s.Equal(by, *got.TaggedBy)
	s.Equal(model.Date("2024-01-01"), *got.LastTaggedDate)
	s.Equal(1500*time.Millisecond, got.TotalTaggedDuration)
	s.Equal(int64(123456), got.LifetimePoints)

	s.True(s.mini.Exists("urit:player:7"))
	members, err := s.mini.Members("urit:idx:players")
	s.Require().NoError(err)
	s.Equal([]string{"7"}, members)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 7)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersSkipsMissingRecords() {
	s.savePlayer(model.NewPlayer(1, s.now))
	s.savePlayer(model.NewPlayer(2, s.now))
	_, err := s.mini.SAdd("urit:idx:players", "99", "junk")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Game state tests

func (s *StorageSuite) TestCurrentlyTaggedPointer() {
	_, ok, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	err = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SetCurrentlyTagged(2)
		return nil
	})
	s.Require().NoError(err)

	id, ok, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(model.PlayerID(2), id)

	err = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.ClearCurrentlyTagged()
		return nil
	})
	s.Require().NoError(err)
	s.False(s.mini.Exists("urit:game:currently_tagged"))
}

func (s *StorageSuite) TestGameClock() {
	_, ok, err := s.storage.GetGameClock(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	err = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SaveGameClock(model.NewGameClock(s.now))
		return nil
	})
	s.Require().NoError(err)

	c, ok, err := s.storage.GetGameClock(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.True(c.LastResetAt.Equal(s.now))
}

// Tag event tests

func (s *StorageSuite) TestRecentTagEventsNewestFirstAndTrimmed() {
	for i := range 5 {
		at := s.now.Add(time.Duration(i) * time.Second)
		err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
			d := time.Duration(i) * time.Second
			tx.AppendTagEvent(model.NewTagEvent(1, model.PlayerID(10+i), at, &d))
			return nil
		})
		s.Require().NoError(err)
	}

	events, err := s.storage.RecentTagEvents(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(model.PlayerID(14), events[0].TaggedID)
	s.Equal(model.PlayerID(12), events[2].TaggedID)
	s.Require().NotNil(events[0].PreviousHolderDuration)
	s.Equal(4*time.Second, *events[0].PreviousHolderDuration)

	events, err = s.storage.RecentTagEvents(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(events, 2)
}

// Transaction tests

func (s *StorageSuite) TestFailedTransactionCommitsNothing() {
	boom := errors.New("boom")
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		tx.SavePlayer(model.NewPlayer(7, s.now))
		tx.SetCurrentlyTagged(7)
		return boom
	})
	s.ErrorIs(err, boom)
	s.False(s.mini.Exists("urit:player:7"))
	s.False(s.mini.Exists("urit:game:currently_tagged"))
}

func (s *StorageSuite) TestRetriesWhenPointerChangesConcurrently() {
	attempts := 0
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		attempts++
		id, ok, err := tx.CurrentlyTagged(s.ctx)
		if err != nil {
			return err
		}
		if attempts == 1 {
			s.False(ok)
			s.Require().NoError(s.other.Set(s.ctx, "urit:game:currently_tagged", 5, 0).Err())
		} else {
			s.True(ok)
			s.Equal(model.PlayerID(5), id)
		}
		tx.SetCurrentlyTagged(id + 1)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, attempts)

	id, _, err := s.storage.GetCurrentlyTagged(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PlayerID(6), id)
}

func (s *StorageSuite) TestRetriesWhenReadPlayerChangesConcurrently() {
	s.savePlayer(model.NewPlayer(7, s.now))

	attempts := 0
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		attempts++
		p, err := tx.GetPlayer(s.ctx, 7)
		if err != nil {
			return err
		}
		if attempts == 1 {
			other := p.Clone()
			other.TimesTagged = 10
			s.Require().NoError(s.writeRaw(other))
		}
		p.TimesTagged++
		tx.SavePlayer(p)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, attempts)

	got, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(11, got.TimesTagged, "the concurrent write must not be lost")
}

func (s *StorageSuite) TestGivesUpAfterMaxRetries() {
	attempts := 0
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		attempts++
		if _, _, err := tx.GameClock(s.ctx); err != nil {
			return err
		}
		s.Require().NoError(s.other.Set(s.ctx, "urit:game:clock", "{}", 0).Err())
		tx.SaveGameClock(model.NewGameClock(s.now))
		return nil
	})
	s.ErrorIs(err, storage.ErrConflict)
	s.True(storage.IsTransient(err))
	s.Equal(3, attempts)
}

func (s *StorageSuite) TestReadOnlyTransactionDoesNotConflict() {
	attempts := 0
	err := s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		attempts++
		_, _, err := tx.CurrentlyTagged(s.ctx)
		s.Require().NoError(s.other.Set(s.ctx, "urit:game:currently_tagged", 5, 0).Err())
		return err
	})
	s.Require().NoError(err)
	s.Equal(1, attempts)
}

func (s *StorageSuite) TestUnavailableStore() {
	s.mini.Close()

	_, err := s.storage.GetPlayer(s.ctx, 7)
	s.ErrorIs(err, storage.ErrUnavailable)

	err = s.storage.Atomically(s.ctx, func(tx storage.Tx) error {
		_, _, err := tx.CurrentlyTagged(s.ctx)
		return err
	})
	s.ErrorIs(err, storage.ErrUnavailable)
	s.True(storage.IsTransient(err))
}

// writeRaw stores a player through the second client, bypassing transactions
func (s *StorageSuite) writeRaw(p *model.Player) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.other.Set(s.ctx, playerKey(p.ID), data, 0).Err()
}
