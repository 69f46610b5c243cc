package memory

import (
	"context"
	"sync"
	"time"

	"student_dashboard_backend/internal/model"
)

type statsEntry struct {
	stats     model.QuizStatistics
	expiresAt time.Time
}

// StatsCache is a map-backed repository.StatsCache. Entries expire after
// the TTL like their redis counterparts.
type StatsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uint]statsEntry

	// Now overrides the package clock when set.
	Now func() time.Time
}

func NewStatsCache(ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{ttl: ttl, entries: make(map[uint]statsEntry)}
}

func (c *StatsCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return nowFunc()
}

func (c *StatsCache) Get(_ context.Context, quizID uint) (*model.QuizStatistics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[quizID]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, quizID)
		return nil, false, nil
	}
	s := e.stats
	return &s, true, nil
}

func (c *StatsCache) Set(_ context.Context, stats *model.QuizStatistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[stats.QuizID] = statsEntry{stats: *stats, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *StatsCache) Invalidate(_ context.Context, quizID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, quizID)
	return nil
}
