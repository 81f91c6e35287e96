package scoring

import (
	"time"

	"github.com/GrahamMcBain/urit/internal/model"
)

// tier awards points to a holder who was "it" for at most upTo
type tier struct {
	upTo   time.Duration
	points int
}

// Less time spent "it" earns more points
var tiers = []tier{
	{upTo: 10 * time.Second, points: 100000},
	{upTo: time.Minute, points: 50000},
	{upTo: 5 * time.Minute, points: 25000},
	{upTo: 10 * time.Minute, points: 10000},
	{upTo: 30 * time.Minute, points: 5000},
}

// MinimumPoints is awarded for staying "it" longer than every tier
const MinimumPoints = 1000

// PointsFor returns the award for having been "it" for d.
// Negative durations (clock skew between writers) count as zero.
func PointsFor(d time.Duration) int {
	for _, t := range tiers {
		if d <= t.upTo {
			return t.points
		}
	}
	return MinimumPoints
}

// ApplyAward adds award to the player's daily and lifetime points.
// Daily points are capped at model.MaxDailyPoints and restart when the
// stored date is not today; lifetime points always take the full award.
func ApplyAward(p *model.Player, award int, today model.Date) {
	if p.DailyPointsDate == today {
		p.DailyPoints = min(model.MaxDailyPoints, p.DailyPoints+award)
	} else {
		p.DailyPoints = min(model.MaxDailyPoints, award)
		p.DailyPointsDate = today
	}
	p.LifetimePoints += int64(award)
}

// EffectiveDailyPoints returns the player's daily points as of today
// without modifying the record
func EffectiveDailyPoints(p *model.Player, today model.Date) int {
	if p.DailyPointsDate != today {
		return 0
	}
	return p.DailyPoints
}
