package players

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/GrahamMcBain/urit/internal/dependencies/mocks"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/storage/memory"
	"github.com/GrahamMcBain/urit/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestUpsertThenGetRoundTrip() {
	_, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:          7,
		DisplayName: model.Some("A"),
	})
	s.Require().NoError(err)

	p, err := s.service.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("A", p.DisplayName)
	s.Equal(time.Duration(0), p.TotalTaggedDuration)
	s.Equal(0, p.TimesTagged)
	s.Equal(0, p.TimesTaggedOthers)
	s.Equal(0, p.DailyPoints)
	s.Equal(int64(0), p.LifetimePoints)
	s.Nil(p.TaggedAt)
	s.Nil(p.LastTaggedDate)
}

func (s *ServiceSuite) TestUpsertKeepsOmittedFields() {
	_, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:          7,
		DisplayName: model.Some("Alice"),
		Handle:      model.Some("alice"),
		AvatarURL:   model.Some("https://example.com/a.png"),
	})
	s.Require().NoError(err)

	p, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:          7,
		DisplayName: model.Some("Alice B"),
	})
	s.Require().NoError(err)

	s.Equal("Alice B", p.DisplayName)
	s.Equal("alice", p.Handle)
	s.Equal("https://example.com/a.png", p.AvatarURL)
}

func (s *ServiceSuite) TestUpsertCanSetEmptyString() {
	_, _ = s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 7, AvatarURL: model.Some("x")})

	p, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 7, AvatarURL: model.Some("")})
	s.Require().NoError(err)
	s.Empty(p.AvatarURL)
}

func (s *ServiceSuite) TestUpsertResetsStaleDailyPoints() {
	_, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:          7,
		DailyPoints: model.Some(40000),
	})
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	p, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:          7,
		DisplayName: model.Some("A"),
	})
	s.Require().NoError(err)
	s.Equal(0, p.DailyPoints)
	s.Equal(model.Date("2024-01-02"), p.DailyPointsDate)
}

func (s *ServiceSuite) TestUpsertWithStaleIncomingDateResetsDailyPoints() {
	_, _ = s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 7, DailyPoints: model.Some(40000)})

	p, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:              7,
		DailyPointsDate: model.Some(model.Date("2023-12-31")),
	})
	s.Require().NoError(err)
	s.Equal(0, p.DailyPoints)
	s.Equal(model.Date("2024-01-01"), p.DailyPointsDate)
}

func (s *ServiceSuite) TestUpsertClearsPointerFieldsWithSomeNil() {
	taggedAt := s.clock.Now()
	by := model.PlayerID(3)
	_, _ = s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:       7,
		TaggedAt: model.Some(&taggedAt),
		TaggedBy: model.Some(&by),
	})

	p, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{
		ID:       7,
		TaggedAt: model.Some[*time.Time](nil),
		TaggedBy: model.Some[*model.PlayerID](nil),
	})
	s.Require().NoError(err)
	s.Nil(p.TaggedAt)
	s.Nil(p.TaggedBy)
}

func (s *ServiceSuite) TestUpsertRejectsInvalidPatch() {
	_, err := s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 0})
	s.ErrorIs(err, model.ErrInvalidPlayerID)

	_, err = s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 7, TimesTagged: model.Some(-1)})
	s.ErrorIs(err, model.ErrInvalidPatch)

	_, err = s.service.UpsertPlayer(s.ctx, model.PlayerPatch{ID: 7, DailyPoints: model.Some(model.MaxDailyPoints + 1)})
	s.ErrorIs(err, model.ErrInvalidPatch)

	_, err = s.service.GetPlayer(s.ctx, 7)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestGetPlayerNotFound() {
	_, err := s.service.GetPlayer(s.ctx, 42)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
