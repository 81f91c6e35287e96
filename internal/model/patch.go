package model

import "time"

// Optional holds a value that is either present or absent.
// An absent field in a patch keeps the existing value.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present
func (o Optional[T]) IsSet() bool {
	return o.set
}

// PlayerPatch is a field-level update for a player record.
// Pointer-typed fields use Some(nil) to clear the stored value.
type PlayerPatch struct {
	ID PlayerID

	DisplayName Optional[string]
	Handle      Optional[string]
	AvatarURL   Optional[string]

	TaggedAt Optional[*time.Time]
	TaggedBy Optional[*PlayerID]

	TotalTaggedDuration Optional[time.Duration]
	TimesTagged         Optional[int]
	TimesTaggedOthers   Optional[int]

	DailyPoints     Optional[int]
	DailyPointsDate Optional[Date]
	LifetimePoints  Optional[int64]

	LastTaggedDate Optional[*Date]
}

// Validate checks the patch for values no player record may hold
func (p PlayerPatch) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidPlayerID
	}
	if v, ok := p.TotalTaggedDuration.Get(); ok && v < 0 {
		return ErrInvalidPatch
	}
	if v, ok := p.TimesTagged.Get(); ok && v < 0 {
		return ErrInvalidPatch
	}
	if v, ok := p.TimesTaggedOthers.Get(); ok && v < 0 {
		return ErrInvalidPatch
	}
	if v, ok := p.DailyPoints.Get(); ok && (v < 0 || v > MaxDailyPoints) {
		return ErrInvalidPatch
	}
	if v, ok := p.LifetimePoints.Get(); ok && v < 0 {
		return ErrInvalidPatch
	}
	return nil
}
