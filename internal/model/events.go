package model

import (
	"fmt"
	"time"
)

// TagEvent is an immutable audit record of a successful tag
type TagEvent struct {
	ID         string
	TaggerID   PlayerID
	TaggedID   PlayerID
	OccurredAt time.Time

	// PreviousHolderDuration is how long the previous holder was "it".
	// Nil when nobody was tagged before this event.
	PreviousHolderDuration *time.Duration
}

// NewTagEvent builds an event whose id combines tagger, tagged and timestamp
func NewTagEvent(taggerID, taggedID PlayerID, at time.Time, previous *time.Duration) *TagEvent {
	return &TagEvent{
		ID:                     fmt.Sprintf("%d-%d-%d", taggerID, taggedID, at.UnixMilli()),
		TaggerID:               taggerID,
		TaggedID:               taggedID,
		OccurredAt:             at,
		PreviousHolderDuration: previous,
	}
}
