// Package memory holds map-backed implementations of the repository
// interfaces. Records are copied on the way in and out so callers get the
// same read-modify-write semantics as with the database.
package memory

import (
	"sync"
	"time"
)

type sequence struct {
	mu   sync.Mutex
	next uint
}

func (s *sequence) nextID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

func page[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

var nowFunc = time.Now
