package model

import "time"

// CycleLength is the window after which the "it" pointer is forcibly cleared
const CycleLength = 24 * time.Hour

// GameClock is the process-wide record of the game's reset cycle
type GameClock struct {
	// CycleStartedAt is when the clock was first created
	CycleStartedAt time.Time
	// LastResetAt only ever moves forward
	LastResetAt time.Time
}

// NewGameClock creates the default clock for a game first seen at now
func NewGameClock(now time.Time) *GameClock {
	return &GameClock{
		CycleStartedAt: now,
		LastResetAt:    now,
	}
}

// Due reports whether more than a full cycle has elapsed since the last reset
func (c *GameClock) Due(now time.Time, cycle time.Duration) bool {
	return now.Sub(c.LastResetAt) > cycle
}

// MarkReset advances LastResetAt to now, never backwards
func (c *GameClock) MarkReset(now time.Time) {
	if now.After(c.LastResetAt) {
		c.LastResetAt = now
	}
}
