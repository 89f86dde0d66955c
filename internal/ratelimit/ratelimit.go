// Package ratelimit throttles the self-service posting endpoint with
// sliding time windows. The posting form is open to anonymous sellers, so
// submission bursts get bounced before they reach the quota check.
package ratelimit

import (
	"sync"
	"time"
)

// PostLimiter tracks and enforces listing-submission rate limits
type PostLimiter struct {
	postsPerMinute int
	postsPerHour   int
	enabled        bool

	// Submission tracking
	minuteWindow []time.Time
	hourWindow   []time.Time
	mu           sync.Mutex
}

// NewPostLimiter creates a limiter with the given per-minute and per-hour
// limits. A limit of 0 disables that window.
func NewPostLimiter(postsPerMinute, postsPerHour int, enabled bool) *PostLimiter {
	return &PostLimiter{
		postsPerMinute: postsPerMinute,
		postsPerHour:   postsPerHour,
		enabled:        enabled,
		minuteWindow:   make([]time.Time, 0),
		hourWindow:     make([]time.Time, 0),
	}
}

// Allow checks if a submission is allowed and records it if so.
// Returns true if allowed, false if the rate limit is exceeded.
func (pl *PostLimiter) Allow() bool {
	if !pl.enabled {
		return true
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()

	now := time.Now()
	pl.cleanup(now)

	if pl.postsPerMinute > 0 && len(pl.minuteWindow) >= pl.postsPerMinute {
		return false
	}
	if pl.postsPerHour > 0 && len(pl.hourWindow) >= pl.postsPerHour {
		return false
	}

	pl.minuteWindow = append(pl.minuteWindow, now)
	pl.hourWindow = append(pl.hourWindow, now)

	return true
}

// cleanup removes expired entries from the time windows
func (pl *PostLimiter) cleanup(now time.Time) {
	pl.minuteWindow = filterTimes(pl.minuteWindow, now.Add(-1*time.Minute))
	pl.hourWindow = filterTimes(pl.hourWindow, now.Add(-1*time.Hour))
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := make([]time.Time, 0, len(times))
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// Stats contains limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	PostsLastMinute     int  `json:"posts_last_minute"`
	PostsLastHour       int  `json:"posts_last_hour"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
}

// GetStats returns current limiter statistics
func (pl *PostLimiter) GetStats() Stats {
	if !pl.enabled {
		return Stats{Enabled: false}
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()

	now := time.Now()
	pl.cleanup(now)

	return Stats{
		Enabled:             true,
		PostsLastMinute:     len(pl.minuteWindow),
		PostsLastHour:       len(pl.hourWindow),
		LimitPerMinute:      pl.postsPerMinute,
		LimitPerHour:        pl.postsPerHour,
		RemainingThisMinute: max(0, pl.postsPerMinute-len(pl.minuteWindow)),
		RemainingThisHour:   max(0, pl.postsPerHour-len(pl.hourWindow)),
	}
}

// Reset clears all tracked submissions (useful for testing)
func (pl *PostLimiter) Reset() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.minuteWindow = make([]time.Time, 0)
	pl.hourWindow = make([]time.Time, 0)
}
