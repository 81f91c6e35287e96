package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Timeouts bound every store call so a request never hangs on Redis
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxTxRetries is how many times a transaction that lost a WATCH race
	// is re-run from fresh reads before giving up with ErrConflict
	MaxTxRetries int

	// EventLogLimit caps the tag event list (0 keeps everything)
	EventLogLimit int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		MaxTxRetries:  5,
		EventLogLimit: 1000,
	}
}
