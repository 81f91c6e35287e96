package redis

import (
	"fmt"

	"github.com/GrahamMcBain/urit/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "urit"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of known player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// gameClockKey returns the Redis key for the GameClock singleton
func gameClockKey() string {
	return fmt.Sprintf("%s:game:clock", keyPrefix)
}

// currentlyTaggedKey returns the Redis key for the currently-tagged pointer
func currentlyTaggedKey() string {
	return fmt.Sprintf("%s:game:currently_tagged", keyPrefix)
}

// tagEventsKey returns the Redis key for the tag event LIST
func tagEventsKey() string {
	return fmt.Sprintf("%s:tag:events", keyPrefix)
}
