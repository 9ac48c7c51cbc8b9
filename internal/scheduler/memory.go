package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryScheduler keeps pending actions in process memory. It backs tests
// and deployments without Redis; scheduled actions do not survive a
// restart.
type MemoryScheduler struct {
	mu      sync.Mutex
	pending []Action
}

func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{}
}

func (s *MemoryScheduler) Schedule(_ context.Context, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, action)
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].RunAt.Before(s.pending[j].RunAt)
	})
	return nil
}

func (s *MemoryScheduler) Due(_ context.Context, now time.Time, limit int) ([]Action, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Action
	for len(s.pending) > 0 && len(due) < limit && !s.pending[0].RunAt.After(now) {
		due = append(due, s.pending[0])
		s.pending = s.pending[1:]
	}
	return due, nil
}

// Pending returns a snapshot of queued actions, earliest first.
func (s *MemoryScheduler) Pending() []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Action, len(s.pending))
	copy(out, s.pending)
	return out
}
