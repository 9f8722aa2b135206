package core

import (
	"sync"
	"time"
)

// Sequence hands out unique, strictly increasing ids based on the wall clock
// in milliseconds. Two calls within the same millisecond still differ.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockSequence(now func() time.Time) *Sequence {
	return &Sequence{now: now}
}

func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
