package chat

import (
	"sync"
	"time"
)

// taskScheduler owns every pending timer of one session, keyed by task name.
// Scheduling a key cancels whatever was armed under it, so a session can
// never accumulate two queue timers, two idle timers, or two typing steps.
type taskScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newTaskScheduler() *taskScheduler {
	return &taskScheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arms fn to run after d, replacing any pending task under key.
func (s *taskScheduler) Schedule(key string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[key]; ok {
		prev.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		// A replacement may have been armed under the same key between the
		// timer firing and this callback taking the lock.
		if s.timers[key] == timer {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = timer
}

// Cancel stops the pending task under key, if any.
func (s *taskScheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
}

// CancelAll stops every pending task. Used on session teardown.
func (s *taskScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

// Active reports the number of armed tasks.
func (s *taskScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
