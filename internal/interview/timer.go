package interview

import (
	"sync"
	"time"
)

// questionTimer is the countdown for one question. It ticks the session's
// remaining seconds down and fires the skip path exactly once at zero. A
// timer never outlives its question: advancing, ending, or submitting stops
// it, and a stale fire is caught by the generation guard.
type questionTimer struct {
	stop chan struct{}
	once sync.Once
}

func newQuestionTimer() *questionTimer {
	return &questionTimer{stop: make(chan struct{})}
}

// halt stops the timer; safe to call more than once.
func (t *questionTimer) halt() {
	t.once.Do(func() { close(t.stop) })
}

// startTimerLocked replaces the session's timer with a fresh one for the
// current question. Callers hold s.mu.
func (m *Manager) startTimerLocked(s *Session) {
	s.stopTimerLocked()
	if s.perQuestionSeconds <= 0 {
		return
	}

	t := newQuestionTimer()
	s.timer = t
	go m.runTimer(s, t, s.generation)
}

// stopTimerLocked halts the active timer, if any. Callers hold s.mu.
func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.halt()
		s.timer = nil
	}
}

func (m *Manager) runTimer(s *Session, t *questionTimer, generation uint64) {
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if m.tick(s, t, generation) {
				return
			}
		}
	}
}

// tick decrements the countdown; at zero it applies a timeout skip and
// advances. Returns true when the timer is done. A tick against a replaced
// timer or an advanced question is a no-op.
func (m *Manager) tick(s *Session, t *questionTimer, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != t || s.generation != generation || s.state != StateInProgress {
		return true
	}

	s.remaining--
	if s.remaining > 0 {
		return false
	}

	s.applyAnswerLocked(s.currentQuestionLocked(), "", nil, timeoutFeedback)
	m.advanceLocked(s)
	return true
}

const timeoutFeedback = "Time ran out on this question. It was recorded as skipped."
