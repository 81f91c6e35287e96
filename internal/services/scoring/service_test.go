package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GrahamMcBain/urit/internal/model"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		duration time.Duration
		want     int
	}{
		{0, 100000},
		{5 * time.Second, 100000},
		{10 * time.Second, 100000},
		{10*time.Second + time.Millisecond, 50000},
		{59999 * time.Millisecond, 50000},
		{time.Minute, 50000},
		{5 * time.Minute, 25000},
		{10 * time.Minute, 10000},
		{30 * time.Minute, 5000},
		{30*time.Minute + time.Millisecond, 1000},
		{48 * time.Hour, 1000},
		{-time.Second, 100000},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PointsFor(tc.duration), "duration %s", tc.duration)
	}
}

func TestApplyAwardSameDayAccumulatesWithCap(t *testing.T) {
	p := &model.Player{DailyPoints: 60000, DailyPointsDate: "2024-01-01", LifetimePoints: 60000}

	ApplyAward(p, 50000, "2024-01-01")

	assert.Equal(t, model.MaxDailyPoints, p.DailyPoints)
	assert.Equal(t, model.Date("2024-01-01"), p.DailyPointsDate)
	assert.Equal(t, int64(110000), p.LifetimePoints, "lifetime points are never capped")
}

func TestApplyAwardStaleDateRestarts(t *testing.T) {
	p := &model.Player{DailyPoints: 90000, DailyPointsDate: "2023-12-31", LifetimePoints: 90000}

	ApplyAward(p, 25000, "2024-01-01")

	assert.Equal(t, 25000, p.DailyPoints)
	assert.Equal(t, model.Date("2024-01-01"), p.DailyPointsDate)
	assert.Equal(t, int64(115000), p.LifetimePoints)
}

func TestApplyAwardAtCapStillCountsLifetime(t *testing.T) {
	p := &model.Player{DailyPoints: model.MaxDailyPoints, DailyPointsDate: "2024-01-01"}

	ApplyAward(p, 1000, "2024-01-01")

	assert.Equal(t, model.MaxDailyPoints, p.DailyPoints)
	assert.Equal(t, int64(1000), p.LifetimePoints)
}

func TestEffectiveDailyPoints(t *testing.T) {
	p := &model.Player{DailyPoints: 5000, DailyPointsDate: "2024-01-01"}

	assert.Equal(t, 5000, EffectiveDailyPoints(p, "2024-01-01"))
	assert.Equal(t, 0, EffectiveDailyPoints(p, "2024-01-02"))
	assert.Equal(t, 5000, p.DailyPoints, "read must not mutate the record")
}
