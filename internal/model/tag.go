package model

import "fmt"

// RejectionCode identifies why a tag was refused
type RejectionCode string

const (
	RejectSelfTag            RejectionCode = "self_tag"
	RejectNotHolder          RejectionCode = "not_holder"
	RejectAlreadyTaggedToday RejectionCode = "already_tagged_today"
)

// TagResult is the outcome of a tag attempt.
// Rejections are normal results, not errors.
type TagResult struct {
	Accepted bool
	Code     RejectionCode
	Reason   string

	// HolderID names the current holder on a RejectNotHolder result
	HolderID *PlayerID

	// Event is set when the tag was accepted
	Event *TagEvent
}

// AcceptedTag returns a successful result for the given event
func AcceptedTag(event *TagEvent) *TagResult {
	return &TagResult{
		Accepted: true,
		Reason:   "Tag successful!",
		Event:    event,
	}
}

// RejectedSelfTag is returned when a player tries to tag themselves
func RejectedSelfTag() *TagResult {
	return &TagResult{
		Code:   RejectSelfTag,
		Reason: "You can't tag yourself!",
	}
}

// RejectedNotHolder is returned when someone other than the holder tries to tag
func RejectedNotHolder(holder *Player) *TagResult {
	id := holder.ID
	return &TagResult{
		Code:     RejectNotHolder,
		Reason:   fmt.Sprintf("Only %s can tag someone right now!", holder.Name()),
		HolderID: &id,
	}
}

// RejectedAlreadyTaggedToday is returned when the target was already "it" today
func RejectedAlreadyTaggedToday(target *Player) *TagResult {
	return &TagResult{
		Code:   RejectAlreadyTaggedToday,
		Reason: fmt.Sprintf("%s has already been tagged today! Try someone else.", target.Name()),
	}
}
