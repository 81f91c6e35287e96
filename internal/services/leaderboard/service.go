package leaderboard

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/GrahamMcBain/urit/internal/dependencies/clock"
	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/scoring"
	"github.com/GrahamMcBain/urit/internal/storage"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Service builds ranked views over the player records.
// It never writes: stale daily points are zeroed in the projection only.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new LeaderboardService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Top returns up to n players ranked by today's points.
// Players who have never been tagged are left out.
func (s *Service) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLimit
	}
	n = min(n, MaxLimit)

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		s.logger.Error("failed to list players", slog.String("error", err.Error()))
		return nil, err
	}

	today := model.DateOf(s.clock.Now())
	entries := make([]model.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		if p.TimesTagged == 0 {
			continue
		}
		entries = append(entries, entryFor(p, today))
	}

	slices.SortFunc(entries, func(a, b model.LeaderboardEntry) int {
		if c := cmp.Compare(b.DailyPoints, a.DailyPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func entryFor(p *model.Player, today model.Date) model.LeaderboardEntry {
	daily := scoring.EffectiveDailyPoints(p, today)
	e := model.LeaderboardEntry{
		PlayerID:            p.ID,
		DisplayName:         p.DisplayName,
		Handle:              p.Handle,
		AvatarURL:           p.AvatarURL,
		TotalTaggedDuration: p.TotalTaggedDuration,
		TimesTagged:         p.TimesTagged,
		TimesTaggedOthers:   p.TimesTaggedOthers,
		DailyPoints:         daily,
		LifetimePoints:      p.LifetimePoints,
		Score:               daily,
	}
	if p.TimesTagged > 0 {
		avg := p.TotalTaggedDuration / time.Duration(p.TimesTagged)
		e.AverageTagTime = &avg
	}
	return e
}
