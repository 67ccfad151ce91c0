package service

import (
	"sync"
	"time"
)

type timerKey struct {
	UserID  int64
	TaskKey string
}

// TimerService tracks when each (user, task) pair was started. Timers are
// purely in-memory: a restart discards them and the user starts over.
type TimerService struct {
	mu      sync.Mutex
	started map[timerKey]time.Time
	now     func() time.Time
}

func NewTimerService() *TimerService {
	return &TimerService{
		started: make(map[timerKey]time.Time),
		now:     time.Now,
	}
}

// Start records the current time for the pair, overwriting any prior start.
func (s *TimerService) Start(userID int64, taskKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started[timerKey{userID, taskKey}] = s.now()
}

// Active reports whether a timer exists for the pair.
func (s *TimerService) Active(userID int64, taskKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.started[timerKey{userID, taskKey}]
	return ok
}

// Remaining returns max(0, wait-elapsed) truncated to whole seconds, or 0
// when no timer exists for the pair.
func (s *TimerService) Remaining(userID int64, taskKey string, wait time.Duration) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, ok := s.started[timerKey{userID, taskKey}]
	if !ok {
		return 0
	}
	remaining := wait - s.now().Sub(start)
	if remaining < 0 {
		return 0
	}
	return remaining.Truncate(time.Second)
}

// IsComplete reports whether a timer exists and its wait has elapsed.
func (s *TimerService) IsComplete(userID int64, taskKey string, wait time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, ok := s.started[timerKey{userID, taskKey}]
	if !ok {
		return false
	}
	return s.now().Sub(start) >= wait
}

// Clear removes the timer for the pair. Called once, at successful claim.
func (s *TimerService) Clear(userID int64, taskKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.started, timerKey{userID, taskKey})
}

// Count returns the number of live timers, for the stats surface.
func (s *TimerService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.started)
}
