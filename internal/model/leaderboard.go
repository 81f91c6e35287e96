package model

import "time"

// LeaderboardEntry is a read-only projection of a player for ranking
type LeaderboardEntry struct {
	PlayerID    PlayerID
	DisplayName string
	Handle      string
	AvatarURL   string

	// AverageTagTime is nil when the player was never tagged
	AverageTagTime      *time.Duration
	TotalTaggedDuration time.Duration
	TimesTagged         int
	TimesTaggedOthers   int

	DailyPoints    int
	LifetimePoints int64

	// Score is the ranking key, currently the effective daily points
	Score int
}
