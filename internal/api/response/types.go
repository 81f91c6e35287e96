package response

import (
	"time"

	"github.com/GrahamMcBain/urit/internal/model"
	"github.com/GrahamMcBain/urit/internal/services/scoring"
)

// Player represents a player in API responses
type Player struct {
	ID                int64      `json:"id"`
	DisplayName       string     `json:"display_name"`
	Handle            string     `json:"handle,omitempty"`
	AvatarURL         string     `json:"avatar_url,omitempty"`
	IsTagged          bool       `json:"is_tagged"`
	TaggedAt          *time.Time `json:"tagged_at,omitempty"`
	TaggedBy          *int64     `json:"tagged_by,omitempty"`
	TotalTaggedMS     int64      `json:"total_tagged_ms"`
	TimesTagged       int        `json:"times_tagged"`
	TimesTaggedOthers int        `json:"times_tagged_others"`
	DailyPoints       int        `json:"daily_points"`
	LifetimePoints    int64      `json:"lifetime_points"`
	LastTaggedDate    *string    `json:"last_tagged_date,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player.
// Daily points from an earlier day are reported as zero.
func PlayerFromModel(p *model.Player, today model.Date) Player {
	resp := Player{
		ID:                int64(p.ID),
		DisplayName:       p.DisplayName,
		Handle:            p.Handle,
		AvatarURL:         p.AvatarURL,
		IsTagged:          p.IsTagged(),
		TaggedAt:          p.TaggedAt,
		TotalTaggedMS:     p.TotalTaggedDuration.Milliseconds(),
		TimesTagged:       p.TimesTagged,
		TimesTaggedOthers: p.TimesTaggedOthers,
		DailyPoints:       scoring.EffectiveDailyPoints(p, today),
		LifetimePoints:    p.LifetimePoints,
	}
	if p.TaggedBy != nil {
		by := int64(*p.TaggedBy)
		resp.TaggedBy = &by
	}
	if p.LastTaggedDate != nil {
		d := string(*p.LastTaggedDate)
		resp.LastTaggedDate = &d
	}
	return resp
}

// TagEvent represents a tag event in API responses
type TagEvent struct {
	ID                       string    `json:"id"`
	TaggerID                 int64     `json:"tagger_id"`
	TaggedID                 int64     `json:"tagged_id"`
	OccurredAt               time.Time `json:"occurred_at"`
	PreviousHolderDurationMS *int64    `json:"previous_holder_duration_ms,omitempty"`
}

// TagEventFromModel converts model.TagEvent
func TagEventFromModel(e *model.TagEvent) TagEvent {
	resp := TagEvent{
		ID:         e.ID,
		TaggerID:   int64(e.TaggerID),
		TaggedID:   int64(e.TaggedID),
		OccurredAt: e.OccurredAt,
	}
	if e.PreviousHolderDuration != nil {
		ms := e.PreviousHolderDuration.Milliseconds()
		resp.PreviousHolderDurationMS = &ms
	}
	return resp
}

// TagEventsFromModel converts a list of events, keeping their order
func TagEventsFromModel(events []*model.TagEvent) []TagEvent {
	resp := make([]TagEvent, len(events))
	for i, e := range events {
		resp[i] = TagEventFromModel(e)
	}
	return resp
}

// TagResponse is returned for an accepted tag
type TagResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Event   TagEvent `json:"event"`
}

// TagResponseFromResult converts an accepted model.TagResult
func TagResponseFromResult(r *model.TagResult) TagResponse {
	return TagResponse{
		Success: true,
		Message: r.Reason,
		Event:   TagEventFromModel(r.Event),
	}
}

// CurrentlyTagged is the response for GET /tag/current.
// Player is null when nobody is "it".
type CurrentlyTagged struct {
	Player *Player `json:"player"`
}

// TagEvents is the response for GET /tag/events
type TagEvents struct {
	Events []TagEvent `json:"events"`
}

// LeaderboardEntry represents one ranked player
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	PlayerID          int64  `json:"player_id"`
	DisplayName       string `json:"display_name"`
	Handle            string `json:"handle,omitempty"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	AverageTagTimeMS  *int64 `json:"average_tag_time_ms,omitempty"`
	TotalTaggedMS     int64  `json:"total_tagged_ms"`
	TimesTagged       int    `json:"times_tagged"`
	TimesTaggedOthers int    `json:"times_tagged_others"`
	DailyPoints       int    `json:"daily_points"`
	LifetimePoints    int64  `json:"lifetime_points"`
	Score             int    `json:"score"`
}

// Leaderboard is the response for GET /leaderboard
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts ranked entries, numbering them from 1
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	resp := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		resp[i] = LeaderboardEntry{
			Rank:              i + 1,
			PlayerID:          int64(e.PlayerID),
			DisplayName:       e.DisplayName,
			Handle:            e.Handle,
			AvatarURL:         e.AvatarURL,
			TotalTaggedMS:     e.TotalTaggedDuration.Milliseconds(),
			TimesTagged:       e.TimesTagged,
			TimesTaggedOthers: e.TimesTaggedOthers,
			DailyPoints:       e.DailyPoints,
			LifetimePoints:    e.LifetimePoints,
			Score:             e.Score,
		}
		if e.AverageTagTime != nil {
			ms := e.AverageTagTime.Milliseconds()
			resp[i].AverageTagTimeMS = &ms
		}
	}
	return Leaderboard{Entries: resp}
}

// GameClock represents the reset cycle state
type GameClock struct {
	CycleStartedAt time.Time `json:"cycle_started_at"`
	LastResetAt    time.Time `json:"last_reset_at"`
	NextResetAfter time.Time `json:"next_reset_after"`
}

// GameClockFromModel converts model.GameClock
func GameClockFromModel(c *model.GameClock) GameClock {
	return GameClock{
		CycleStartedAt: c.CycleStartedAt,
		LastResetAt:    c.LastResetAt,
		NextResetAfter: c.LastResetAt.Add(model.CycleLength),
	}
}

// ResetResponse is returned by the admin reset endpoints
type ResetResponse struct {
	Reset bool      `json:"reset"`
	Clock GameClock `json:"clock"`
}

// Health is the response for GET /health
type Health struct {
	Status string `json:"status"`
}
