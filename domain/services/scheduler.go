package services

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ClosureScheduler arms one cancellable timer per giveaway, firing the
// orchestrator's close path at the giveaway's end time. Timers are keyed by
// announcement message ID and released once closure happens by any path; a
// timer that fires anyway is harmless because of the registry's close-once
// guard.
type ClosureScheduler struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
	fire   func(messageID int64)
}

// NewClosureScheduler creates a scheduler that invokes fire when a giveaway's
// end time is reached.
func NewClosureScheduler(fire func(messageID int64)) *ClosureScheduler {
	return &ClosureScheduler{
		timers: make(map[int64]*time.Timer),
		fire:   fire,
	}
}

// Arm schedules automatic closure for messageID at endsAt. A delay that is
// already zero or negative (clock drift, very short giveaways) fires
// immediately. Re-arming an existing key replaces the previous timer.
func (s *ClosureScheduler) Arm(messageID int64, endsAt time.Time) {
	delay := time.Until(endsAt)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[messageID]; ok {
		prev.Stop()
	}
	s.timers[messageID] = time.AfterFunc(delay, func() {
		s.remove(messageID)
		s.fire(messageID)
	})

	log.WithFields(log.Fields{
		"message_id": messageID,
		"ends_at":    endsAt,
		"delay":      delay,
	}).Debug("Armed giveaway closure timer")
}

// Cancel stops and releases the timer for messageID. Safe to call for keys
// that were never armed or already fired.
func (s *ClosureScheduler) Cancel(messageID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[messageID]; ok {
		timer.Stop()
		delete(s.timers, messageID)
	}
}

// StopAll releases every pending timer. Used during shutdown; no closure is
// resumed on restart.
func (s *ClosureScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the number of armed timers.
func (s *ClosureScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ClosureScheduler) remove(messageID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, messageID)
}
