package model

import (
	"strconv"
	"time"
)

// MaxDailyPoints caps the points a player can hold for a single day
const MaxDailyPoints = 100000

// PlayerID uniquely identifies a player across the system.
// It is the numeric id issued by the external identity provider.
type PlayerID int64

// String returns the decimal form of the id
func (id PlayerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParsePlayerID parses a decimal player id
func ParsePlayerID(s string) (PlayerID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidPlayerID
	}
	return PlayerID(n), nil
}

// Player is the durable record for a game participant
type Player struct {
	ID PlayerID

	// Profile cache supplied by the identity provider
	DisplayName string
	Handle      string
	AvatarURL   string

	// Set only while this player is "it"
	TaggedAt *time.Time
	TaggedBy *PlayerID

	TotalTaggedDuration time.Duration
	TimesTagged         int
	TimesTaggedOthers   int

	DailyPoints     int
	DailyPointsDate Date
	LifetimePoints  int64

	// LastTaggedDate is the day this player last became "it"
	LastTaggedDate *Date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPlayer returns a zero-valued record for a player seen for the first time
func NewPlayer(id PlayerID, now time.Time) *Player {
	return &Player{
		ID:              id,
		DailyPointsDate: DateOf(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsTagged reports whether the player is currently "it"
func (p *Player) IsTagged() bool {
	return p.TaggedAt != nil
}

// Name returns the display name, falling back to the handle or id
func (p *Player) Name() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Handle != "":
		return "@" + p.Handle
	default:
		return "player " + p.ID.String()
	}
}

// ClearTagged removes the "it" status from the record
func (p *Player) ClearTagged() {
	p.TaggedAt = nil
	p.TaggedBy = nil
}

// RollDailyPoints zeroes DailyPoints when they belong to a day other than today
func (p *Player) RollDailyPoints(today Date) {
	if p.DailyPointsDate != today {
		p.DailyPoints = 0
		p.DailyPointsDate = today
	}
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	if p.TaggedAt != nil {
		t := *p.TaggedAt
		c.TaggedAt = &t
	}
	if p.TaggedBy != nil {
		by := *p.TaggedBy
		c.TaggedBy = &by
	}
	if p.LastTaggedDate != nil {
		d := *p.LastTaggedDate
		c.LastTaggedDate = &d
	}
	return &c
}

// Apply merges the fields present in the patch onto the player.
// Stale daily points are reset before any patched value is applied.
func (p *Player) Apply(patch PlayerPatch, now time.Time) {
	today := DateOf(now)

	if d, ok := patch.DailyPointsDate.Get(); ok && d != today {
		p.DailyPointsDate = d
	}
	p.RollDailyPoints(today)

	if v, ok := patch.DisplayName.Get(); ok {
		p.DisplayName = v
	}
	if v, ok := patch.Handle.Get(); ok {
		p.Handle = v
	}
	if v, ok := patch.AvatarURL.Get(); ok {
		p.AvatarURL = v
	}
	if v, ok := patch.TaggedAt.Get(); ok {
		p.TaggedAt = v
	}
	if v, ok := patch.TaggedBy.Get(); ok {
		p.TaggedBy = v
	}
	if v, ok := patch.TotalTaggedDuration.Get(); ok {
		p.TotalTaggedDuration = v
	}
	if v, ok := patch.TimesTagged.Get(); ok {
		p.TimesTagged = v
	}
	if v, ok := patch.TimesTaggedOthers.Get(); ok {
		p.TimesTaggedOthers = v
	}
	if v, ok := patch.DailyPoints.Get(); ok {
		p.DailyPoints = min(max(v, 0), MaxDailyPoints)
	}
	if v, ok := patch.LifetimePoints.Get(); ok {
		p.LifetimePoints = v
	}
	if v, ok := patch.LastTaggedDate.Get(); ok {
		p.LastTaggedDate = v
	}

	p.UpdatedAt = now
}
