package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error to stderr
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		body := APIError{Message: err.Error()}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			body = *apiErr
		}
		data, _ := json.Marshal(ErrorResponse{Error: body})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case TagResult:
		o.printTagResult(v)
	case CurrentlyTagged:
		o.printCurrentlyTagged(v)
	case TagEvents:
		o.printTagEvents(v)
	case TagEvent:
		o.printTagEvent(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case ResetResult:
		o.printResetResult(v)
	case HashResult:
		fmt.Println(v.Hash)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// TagEvent response type
type TagEvent struct {
	ID                       string    `json:"id"`
	TaggerID                 int64     `json:"tagger_id"`
	TaggedID                 int64     `json:"tagged_id"`
	OccurredAt               time.Time `json:"occurred_at"`
	PreviousHolderDurationMS *int64    `json:"previous_holder_duration_ms,omitempty"`
}

// TagResult response type
type TagResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Event   TagEvent `json:"event"`
}

// CurrentlyTagged response type
type CurrentlyTagged struct {
	Player *Player `json:"player"`
}

// TagEvents response type
type TagEvents struct {
	Events []TagEvent `json:"events"`
}

// LeaderboardEntry response type
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

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// GameClock response type
type GameClock struct {
	CycleStartedAt time.Time `json:"cycle_started_at"`
	LastResetAt    time.Time `json:"last_reset_at"`
	NextResetAfter time.Time `json:"next_reset_after"`
}

// ResetResult response type
type ResetResult struct {
	Reset bool      `json:"reset"`
	Clock GameClock `json:"clock"`
}

// HashResult is the output of admin hash-key
type HashResult struct {
	Hash string `json:"hash"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

const timeLayout = "2006-01-02 15:04:05"

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%d)\n", p.DisplayName, p.ID)
	if p.Handle != "" {
		fmt.Printf("Handle: @%s\n", p.Handle)
	}
	if p.IsTagged && p.TaggedAt != nil {
		fmt.Printf("It: yes, since %s\n", p.TaggedAt.Local().Format(timeLayout))
	} else {
		fmt.Println("It: no")
	}
	fmt.Printf("Time tagged: %s\n", formatMS(p.TotalTaggedMS))
	fmt.Printf("Times tagged: %d\n", p.TimesTagged)
	fmt.Printf("Times tagged others: %d\n", p.TimesTaggedOthers)
	fmt.Printf("Points today: %d\n", p.DailyPoints)
	fmt.Printf("Lifetime points: %d\n", p.LifetimePoints)
}

func (o *Output) printTagResult(r TagResult) {
	fmt.Println(r.Message)
	if r.Event.PreviousHolderDurationMS != nil {
		fmt.Printf("Previous holder was it for %s\n", formatMS(*r.Event.PreviousHolderDurationMS))
	}
}

func (o *Output) printCurrentlyTagged(c CurrentlyTagged) {
	if c.Player == nil {
		fmt.Println("Nobody is it")
		return
	}
	o.printPlayer(*c.Player)
}

func (o *Output) printTagEvents(e TagEvents) {
	if len(e.Events) == 0 {
		fmt.Println("No tag events")
		return
	}
	for _, evt := range e.Events {
		o.printTagEvent(evt)
	}
}

func (o *Output) printTagEvent(e TagEvent) {
	line := fmt.Sprintf("[%s] %d tagged %d", e.OccurredAt.Local().Format(timeLayout), e.TaggerID, e.TaggedID)
	if e.PreviousHolderDurationMS != nil {
		line += fmt.Sprintf(" (held %s)", formatMS(*e.PreviousHolderDurationMS))
	}
	fmt.Println(line)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}
	for _, e := range l.Entries {
		fmt.Printf("%3d. %-24s %8d pts  tagged %dx  held %s\n",
			e.Rank, e.DisplayName, e.Score, e.TimesTagged, formatMS(e.TotalTaggedMS))
	}
}

func (o *Output) printResetResult(r ResetResult) {
	if r.Reset {
		fmt.Println("Game cycle reset")
	} else {
		fmt.Println("No reset due")
	}
	fmt.Printf("Last reset: %s\n", r.Clock.LastResetAt.Local().Format(timeLayout))
	fmt.Printf("Next reset after: %s\n", r.Clock.NextResetAfter.Local().Format(timeLayout))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatMS(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
